// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/primegen/internal/sieve"
)

// defaultLimit is the sieve bound used when neither a flag, env var nor
// config value supplies one.
const defaultLimit = 10_000_000

// configSources returns the namespaced then top level yaml sources for key.
func configSources(ns, key, source string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+key, altsrc.StringSourcer(source)),
		yaml.YAML(key, altsrc.StringSourcer(source)),
	}
}

// NewGlobalFlags returns the flags shared by every sieve backed command.
// params[0] is the command namespace and params[1] the config file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	ns, source := params[0], ""
	if len(params) > 1 {
		source = params[1]
	}

	maxLimit := &cli.IntFlag{
		Name:    "max-limit",
		Usage:   "refuse to sieve above this bound",
		Value:   sieve.DefaultMaxLimit,
		Sources: cli.NewValueSourceChain(cli.EnvVar("PRIMEGEN_MAX_LIMIT")),
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	maxLimit.Sources.Chain = append(maxLimit.Sources.Chain, configSources(ns, "maxlimit", source)...)

	flags = []cli.Flag{
		maxLimit,
		&cli.BoolFlag{
			Name:        "nocache",
			Usage:       "bypass the sieve result cache",
			HideDefault: true,
		},
	}

	return
}

// NewDisplayFlags returns the flags that shape tabular output.
func NewDisplayFlags(ns, source string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of key[:title[:transform]] table columns",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"attrs", altsrc.StringSourcer(source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(configSources(ns, "color", source)...),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of keys to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"sort", altsrc.StringSourcer(source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(configSources(ns, "titles", source)...),
			Value:   false,
		},
	}
}

// NewLimitFlag constructs the --limit flag. Env beats config; the namespaced
// config key beats the top level one.
func NewLimitFlag(ns, source string, value int, usage string) *cli.IntFlag {
	flag := &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"l"},
		Usage:   usage,
		Value:   value,
		Sources: cli.NewValueSourceChain(cli.EnvVar("PRIMEGEN_LIMIT")),
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, "limit", source)...)
	return flag
}

// NewOutputFlag constructs the --output flag accepting only formats.
func NewOutputFlag(ns, source string, formats []string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Sources: cli.NewValueSourceChain(configSources(ns, "output", source)...),
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, OutputValidator(formats...))
		},
	}
}

// NewS3Flags constructs the flags that send output to an S3 object.
func NewS3Flags(ns, source string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "upload the output to this S3 bucket",
			Sources: cli.NewValueSourceChain(append([]cli.ValueSource{cli.EnvVar("PRIMEGEN_S3_BUCKET")}, configSources(ns, "s3bucket", source)...)...),
		},
		&cli.StringFlag{
			Name:  "s3-key",
			Usage: "object key for --s3-bucket, defaults to the --out file name or primes.<ext>",
		},
		&cli.StringFlag{
			Name:    "aws-profile",
			Usage:   "shared config profile used for S3",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		},
		&cli.StringFlag{
			Name:    "aws-region",
			Usage:   "region used for S3",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		},
	}
}
