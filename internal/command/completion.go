// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/d2frames/internal/meta"
)

const bashCompletionScript = `# bash completion for d2frames
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_d2frames()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "report weapons cache completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --titles -t --tldr"
    local api="--api-key --user-agent --base-url --lang"
    local cache="--cache-dir --cache-bucket --cache-prefix --cache-region --cache-profile --cache-endpoint --no-cache"

    case "$cmd" in
        report)
            local opts="$common $api $cache --output -o --out --title"
            if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
                COMPREPLY=( $(compgen -W "html text json yaml" -- "$cur") )
                return 0
            fi
            if [[ "$prev" == "--out" || "$prev" == "--cache-dir" ]]; then
                COMPREPLY=( $(compgen -f -- "$cur") )
                return 0
            fi
            ;;
        weapons)
            local opts="$common $api $cache --attrs -a --output -o --schema --sort -s"
            if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
                COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
                return 0
            fi
            ;;
        cache)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "path purge" -- "$cur") )
                return 0
            fi
            case "${COMP_WORDS[2]}" in
                path)  local opts="--cache-dir --titles -t" ;;
                purge) local opts="--cache-dir --hours" ;;
                *)     local opts="" ;;
            esac
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _d2frames d2frames
`

const zshCompletionScript = `#compdef d2frames

_d2frames() {
  local -a cmds
  cmds=(
    'report:weapons grouped by type, frame and damage type'
    'weapons:list the normalized weapons'
    'cache:inspect and clean the response cache'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  '--api-key[Bungie.net API key]:key'
  '--user-agent[User-Agent header]:agent'
  '--base-url[API origin]:url'
  '--lang[manifest language]:lang'
  '--cache-dir[cache directory]:dir:_directories'
  '--cache-bucket[S3 bucket]:bucket'
  '--cache-prefix[S3 key prefix]:prefix'
  '--cache-region[AWS region]:region'
  '--cache-profile[AWS profile]:profile'
  '--cache-endpoint[S3 endpoint]:url'
  '--no-cache[bypass the response cache]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'd2frames commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    report)
      _arguments -C \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(html text json yaml)' \
        '--out[output file]:file:_files' \
        '--title[report title]:title'
      ;;
    weapons)
      _arguments -C \
        $common \
        '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '--schema[list the weapon attributes]' \
        '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
      ;;
    cache)
      if (( CURRENT == 3 )); then
        _values 'cache commands' path purge
        return
      fi
      case $words[3] in
        path)
          _arguments -C \
            '--cache-dir[cache directory]:dir:_directories' \
            '(-t --titles)'{-t,--titles}'[show state and key]' \
            '*:url'
          ;;
        purge)
          _arguments -C \
            '--cache-dir[cache directory]:dir:_directories' \
            '--hours[age in hours]:hours'
          ;;
      esac
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _d2frames d2frames
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := Writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: d2frames completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "d2frames completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
