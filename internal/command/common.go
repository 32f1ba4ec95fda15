// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/primegen/internal/aws"
	"github.com/staranto/primegen/internal/cacheutil"
	"github.com/staranto/primegen/internal/meta"
	"github.com/staranto/primegen/internal/output"
	"github.com/staranto/primegen/internal/sieve"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadPrimes sieves up to limit honoring --max-limit and --nocache. The
// returned duration covers only the sieve, or the cache read on a hit.
func LoadPrimes(cmd *cli.Command, limit int) (*sieve.Result, time.Duration, error) {
	opts := []sieve.Option{sieve.WithMaxLimit(cmd.Int("max-limit"))}

	start := time.Now()
	if cmd.Bool("nocache") {
		r, err := sieve.Sieve(limit, opts...)
		return r, time.Since(start), err
	}

	r, hit, err := cacheutil.LoadOrSieve(limit, opts...)
	log.Debugf("sieve(%d) cache hit: %v", limit, hit)
	return r, time.Since(start), err
}

// BuildSinks resolves where a document goes: --out, --s3-bucket, or stdout
// when neither is given.
func BuildSinks(ctx context.Context, cmd *cli.Command) ([]output.Sink, error) {
	var sinks []output.Sink

	out := cmd.String("out")
	if out != "" {
		sinks = append(sinks, output.FileSink{Path: out})
	}

	if bucket := cmd.String("s3-bucket"); bucket != "" {
		key := s3Key(cmd.String("s3-key"), out, cmd.String("output"))

		var opts []aws.Option
		if p := cmd.String("aws-profile"); p != "" {
			opts = append(opts, aws.WithProfile(p))
		}
		if r := cmd.String("aws-region"); r != "" {
			opts = append(opts, aws.WithRegion(r))
		}
		cfg, err := aws.LoadAWSConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		sinks = append(sinks, output.S3Sink{
			Uploader: aws.Uploader{API: aws.NewS3(cfg), Bucket: bucket},
			Bucket:   bucket,
			Key:      key,
		})
	}

	if len(sinks) == 0 {
		sinks = append(sinks, output.WriterSink{W: stdout(cmd)})
	}
	return sinks, nil
}

// s3Key picks the object key: an explicit key, else the --out file name,
// else "primes" with the format's extension.
func s3Key(key, out, format string) string {
	switch {
	case key != "":
		return key
	case out != "":
		return filepath.Base(out)
	default:
		return "primes." + output.Extension(format)
	}
}

// stdout is the root command's writer, which tests replace.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
