// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/mpctl/mpctl/internal/catalog"
	"github.com/mpctl/mpctl/internal/config"
	"github.com/mpctl/mpctl/internal/log"
	"github.com/mpctl/mpctl/internal/meta"
)

// eqDefaultColumns are the attributes emitted for catalog entities.
var eqDefaultColumns = []string{"name", "id", "type"}

// eqCommandAction is the action handler for the "eq" subcommand. It lists the
// first page of entities of every requested type and prints them.
func eqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(catalog.EntitySummary{}), m.Out()) {
		return nil
	}

	types := entityTypes(cmd)
	log.Debugf("entity types: %v", types)

	cfg, err := loadAWSConfig(ctx, cmd)
	if err != nil {
		return err
	}

	e := newEnumerator(cfg, cmd.String("catalog"))
	log.Debugf("enumerating catalog %s", e.Catalog())

	results, err := e.Enumerate(ctx, types)
	if err != nil {
		return err
	}

	if cmd.String("output") == "text" && !wantsTable(cmd) {
		catalog.Print(m.Out(), results, catalog.PrintOptions{ShowIDs: cmd.Bool("ids"), Done: true})
		return nil
	}

	for _, r := range results {
		if r.Skipped() {
			log.Warnf("skipping %s, %s", r.EntityType, r.SkipReason())
		}
	}

	return EmitRows(cmd, catalog.Rows(results), m.Out(), eqDefaultColumns...)
}

// entityTypes returns --types when given on the command line or environment,
// then the eq.types config list, then the defaults.
func entityTypes(cmd *cli.Command) []string {
	if cmd.IsSet("types") {
		return cmd.StringSlice("types")
	}
	if types, err := config.GetStringSlice("types"); err == nil && len(types) > 0 {
		return types
	}
	return cmd.StringSlice("types")
}

func eqCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "eq",
		Usage:     "enumerate marketplace catalog entities",
		UsageText: "mpctl eq [options]",
		Flags: []cli.Flag{
			NewCatalogFlag("eq", m.Config.Source),
			NewTypesFlag(),
			&cli.BoolFlag{
				Name:  "ids",
				Usage: "include entity ids in text output",
			},
		},
		Action: eqCommandAction,
		Meta:   m,
	}).Build()
}
