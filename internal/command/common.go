// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"reflect"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/urfave/cli/v3"

	mpaws "github.com/mpctl/mpctl/internal/aws"
	"github.com/mpctl/mpctl/internal/catalog"
	"github.com/mpctl/mpctl/internal/entitlement"
	"github.com/mpctl/mpctl/internal/filters"
	"github.com/mpctl/mpctl/internal/meta"
	"github.com/mpctl/mpctl/internal/output"
)

// Provider wiring. Tests swap these for fakes.
var (
	loadAWSConfig = func(ctx context.Context, cmd *cli.Command) (awsv2.Config, error) {
		return mpaws.LoadAWSConfig(ctx,
			mpaws.WithProfile(cmd.String("profile")),
			mpaws.WithRegion(cmd.String("region")),
		)
	}

	newEnumerator = func(cfg awsv2.Config, catalogName string) *catalog.Enumerator {
		return catalog.NewEnumerator(mpaws.NewMarketplaceCatalog(cfg), catalogName)
	}

	newPropagator = entitlement.NewFromConfig
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

// DumpSchemaIfRequested writes the attribute names of t to w when --schema is
// set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type, w io.Writer) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, w)
		return true
	}
	return false
}

// BuildColumns returns the columns to emit: --attrs when given, otherwise
// defaults.
func BuildColumns(cmd *cli.Command, defaults ...string) []string {
	spec := cmd.String("attrs")
	if spec == "" {
		return defaults
	}

	var columns []string
	for _, a := range strings.Split(spec, ",") {
		if a = strings.TrimSpace(a); a != "" {
			columns = append(columns, a)
		}
	}
	return columns
}

// EmitRows filters rows per --filter and emits them per the output flags.
func EmitRows(cmd *cli.Command, rows []map[string]interface{}, w io.Writer, defaults ...string) error {
	rows = filters.Apply(rows, cmd.String("filter"))
	return output.Emit(rows, output.OptionsFromCommand(cmd, BuildColumns(cmd, defaults...)...), w)
}

// wantsTable reports whether text output should be rendered as a table rather
// than the plain listing.
func wantsTable(cmd *cli.Command) bool {
	return cmd.Bool("titles") || cmd.Bool("color") ||
		cmd.IsSet("sort") || cmd.IsSet("attrs") || cmd.IsSet("filter")
}
