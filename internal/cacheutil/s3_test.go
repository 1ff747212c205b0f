// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjects is an in-memory stand-in for the S3 client.
type fakeObjects struct {
	objects map[string][]byte
	getErr  error
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key)] = data
	return &s3v2.PutObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	ctx := context.Background()
	t.Setenv("D2FRAMES_CACHE", "")

	fake := &fakeObjects{objects: map[string][]byte{}}
	store := &S3Store{Client: fake, Bucket: "bucket", Prefix: "d2frames/en"}
	c := New(store)

	var out payload
	assert.False(t, c.Get(ctx, "https://www.bungie.net/x", &out))

	require.NoError(t, c.Put(ctx, "https://www.bungie.net/x", payload{Name: "x"}))
	assert.Contains(t, fake.objects, "bucket/d2frames/en/"+SlotName("https://www.bungie.net/x"))

	assert.True(t, c.Get(ctx, "https://www.bungie.net/x", &out))
	assert.Equal(t, "x", out.Name)
	assert.Equal(t, "s3://bucket/d2frames/en/"+SlotName("k"), store.Location(SlotName("k")))
}

func TestS3Store_ReadErrors(t *testing.T) {
	ctx := context.Background()
	store := &S3Store{Client: &fakeObjects{objects: map[string][]byte{}}, Bucket: "b"}

	_, err := store.Read(ctx, "missing.json")
	assert.ErrorIs(t, err, ErrMiss)

	store.Client = &fakeObjects{getErr: errors.New("access denied")}
	_, err = store.Read(ctx, "any.json")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)

	t.Setenv("D2FRAMES_CACHE", "")
	var out payload
	assert.False(t, New(store).Get(ctx, "any", &out))
}
