// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/joho/godotenv"

	"github.com/staranto/d2frames/internal/command"
	"github.com/staranto/d2frames/internal/config"
	mylog "github.com/staranto/d2frames/internal/log"
	"github.com/staranto/d2frames/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// A .env next to where we run supplies the credentials. It is optional and
	// never overrides variables that are already set.
	envErr := godotenv.Load()

	mylog.InitLogger()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warnf("failed to load .env: %v", envErr)
	}

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an argument set. An arg of the form @name anywhere
// after the command is replaced by the entries of <command>.name from the
// config file. Without one, <command>.defaults is used when it exists. Each
// entry may hold several space-separated args.
func mangleArguments(args []string) []string {
	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return []string{args[0], args[1], "--help"}
		}
	}

	// Flags before the command (--version) or a nested command (cache path)
	// are left alone.
	if strings.HasPrefix(args[1], "-") || args[1] == "cache" || args[1] == "completion" {
		return args
	}

	if _, err := config.Load(args[1]); err != nil {
		log.Debugf("no argument sets: %v", err)
	}

	// We know the first two args are going to be the executable and command.
	workingArgs := make([]string, 2, len(args)+4) //nolint:mnd
	copy(workingArgs, args[:2])

	idx := 2
	set := "defaults"
	explicit := false
	for _, a := range args[2:] {
		if strings.HasPrefix(a, "@") && !explicit {
			set = a[1:]
			explicit = true
			continue
		}
		workingArgs = append(workingArgs, a)
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil && explicit {
		fmt.Fprintf(os.Stderr, "argument set @%s not found in config\n", set)
	}

	// Set args go first so the command line can override them.
	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}
	out := append(workingArgs[:idx:idx], expanded...)
	out = append(out, workingArgs[idx:]...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
