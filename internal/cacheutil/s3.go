// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of the S3 client used by S3Store.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// S3Store keeps one object per slot beneath Prefix in Bucket, so a cache can
// be shared between machines.
type S3Store struct {
	Client ObjectAPI
	Bucket string
	Prefix string
}

func (s *S3Store) key(slot string) string {
	return path.Join(s.Prefix, slot)
}

func (s *S3Store) Location(slot string) string {
	return "s3://" + s.Bucket + "/" + s.key(slot)
}

func (s *S3Store) Read(ctx context.Context, slot string) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.key(slot)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.Location(slot), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Location(slot), err)
	}
	return data, nil
}

func (s *S3Store) Write(ctx context.Context, slot string, data []byte) error {
	_, err := s.Client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(s.Bucket),
		Key:         awsv2.String(s.key(slot)),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Location(slot), err)
	}
	return nil
}
