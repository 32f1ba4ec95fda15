// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3v2.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.input = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3v2.PutObjectOutput{}, f.err
}

func TestUpload(t *testing.T) {
	fake := &fakePutter{}
	u := Uploader{API: fake, Bucket: "primes"}

	err := u.Upload(context.Background(), "lists/primes.js", []byte("const primes = [2];"), "text/javascript")
	require.NoError(t, err)

	assert.Equal(t, "primes", awsv2.ToString(fake.input.Bucket))
	assert.Equal(t, "lists/primes.js", awsv2.ToString(fake.input.Key))
	assert.Equal(t, "text/javascript", awsv2.ToString(fake.input.ContentType))
	assert.Equal(t, int64(19), awsv2.ToInt64(fake.input.ContentLength))
	assert.Equal(t, "const primes = [2];", string(fake.body))
}

func TestUploadErrors(t *testing.T) {
	ctx := context.Background()

	assert.Error(t, Uploader{API: &fakePutter{}}.Upload(ctx, "k", nil, ""))
	assert.Error(t, Uploader{API: &fakePutter{}, Bucket: "b"}.Upload(ctx, "", nil, ""))

	boom := errors.New("boom")
	err := Uploader{API: &fakePutter{err: boom}, Bucket: "b"}.Upload(ctx, "k", []byte("x"), "")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s3://b/k")
}
