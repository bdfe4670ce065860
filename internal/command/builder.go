// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/mpctl/mpctl/internal/meta"
)

// CommandBuilder constructs a cli.Command for the AWS backed subcommands (eq,
// propagate) using a consistent pattern. The builder wires metadata, adds the
// schema, AWS and output flags, and sets up validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, b.Flags...)
	flags = append(flags, NewSchemaFlag())
	flags = append(flags, NewAWSFlags(b.Name, b.Meta.Config.Source)...)
	flags = append(flags, NewGlobalFlags()...)

	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: b.Action,
	}
}
