// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"regexp"

	"github.com/urfave/cli/v3"
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

// GlobalFlagsValidator rejects flag combinations that have no effect.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("output") != "text" && (c.Bool("titles") || c.Bool("color")) {
		return fmt.Errorf("--titles and --color only apply to text output")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

var regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d+$`)

// RegionValidator accepts an empty value or a region name such as us-east-1.
func RegionValidator(value any) error {
	s, _ := value.(string)
	if s == "" || regionPattern.MatchString(s) {
		return nil
	}
	return fmt.Errorf("%q is not a region name", s)
}
