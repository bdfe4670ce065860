// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mpctl/mpctl/internal/config"
	"github.com/mpctl/mpctl/internal/log"
	"github.com/mpctl/mpctl/internal/meta"
)

// InitApp builds the mpctl command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	return initApp(meta.Meta{Args: args, Context: ctx})
}

func initApp(m meta.Meta) (*cli.Command, error) {
	// The arg[1] immediately following the binary is the mpctl subcommand and
	// also the namespace used when retrieving config values. It could be
	// -h/--help, so ignore it if it looks like a flag.
	var ns string
	if len(m.Args) > 1 && !strings.HasPrefix(m.Args[1], "-") {
		ns = m.Args[1]
	}

	config.Config.Namespace = ns
	cfg, err := config.Load()
	if err != nil {
		// A missing config file is normal.
		log.Debugf("config not loaded: %v", err)
	}
	m.Config = cfg

	app := &cli.Command{
		Name:  "mpctl",
		Usage: "AWS Marketplace catalog and entitlement control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "mpctl version info",
				HideDefault: true,
			},
		},
		Writer: m.Out(),
	}

	app.Commands = append(app.Commands,
		eqCommandBuilder(m),
		propagateCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
