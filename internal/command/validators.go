// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative, got %d", n)
	}
	return nil
}

// OutputValidator returns a validator accepting only the given formats.
func OutputValidator(formats ...string) FlagValidatorType {
	return func(value any) error {
		if s, ok := value.(string); ok && slices.Contains(formats, s) {
			return nil
		}
		return fmt.Errorf("must be one of %v", formats)
	}
}

// ParseValues converts positional arguments into the values to factorize.
// Underscores are accepted as digit separators.
func ParseValues(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one value to factorize is required")
	}

	values := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.ReplaceAll(a, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: must be an integer", a)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value %d: must not be negative", n)
		}
		values = append(values, n)
	}
	return values, nil
}
