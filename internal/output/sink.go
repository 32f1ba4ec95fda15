// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/dchest/safefile"
)

// Sink is the destination of a fully encoded document.
type Sink interface {
	Send(ctx context.Context, data []byte, contentType string) error
	String() string
}

// WriterSink copies the document to W, normally os.Stdout.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Send(_ context.Context, data []byte, _ string) error {
	_, err := s.W.Write(data)
	return err
}

func (s WriterSink) String() string { return "stdout" }

// FileSink replaces Path atomically with the document.
type FileSink struct {
	Path string
}

func (s FileSink) Send(_ context.Context, data []byte, _ string) error {
	if err := safefile.WriteFile(s.Path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	log.Debugf("wrote %d bytes to %s", len(data), s.Path)
	return nil
}

func (s FileSink) String() string { return s.Path }

// ObjectUploader is satisfied by aws.Uploader.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// S3Sink uploads the document under Key.
type S3Sink struct {
	Uploader ObjectUploader
	Bucket   string
	Key      string
}

func (s S3Sink) Send(ctx context.Context, data []byte, contentType string) error {
	return s.Uploader.Upload(ctx, s.Key, data, contentType)
}

func (s S3Sink) String() string { return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key) }

// Fanout sends data to every sink, stopping at the first failure.
func Fanout(ctx context.Context, sinks []Sink, data []byte, contentType string) error {
	for _, s := range sinks {
		if err := s.Send(ctx, data, contentType); err != nil {
			return err
		}
	}
	return nil
}
