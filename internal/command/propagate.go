// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/mpctl/mpctl/internal/entitlement"
	"github.com/mpctl/mpctl/internal/log"
	"github.com/mpctl/mpctl/internal/meta"
)

// errNoEvent is returned when propagate is run without an event file.
var errNoEvent = errors.New("an event file is required, use - for stdin")

// propagateDefaultColumns are the attributes emitted for grant outcomes.
var propagateDefaultColumns = []string{"account_id", "activated", "grant_arn", "error"}

// propagateCommandAction is the action handler for the "propagate" subcommand.
// It replays a captured product event through the same steps the Lambda runs.
func propagateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(entitlement.GrantOutcome{}), m.Out()) {
		return nil
	}

	raw, err := readEvent(cmd.Args().First(), m.In())
	if err != nil {
		return err
	}
	ev, err := entitlement.ParseEvent(raw)
	if err != nil {
		return err
	}

	settings := entitlement.Settings{
		PortfolioID:      cmd.String("portfolio"),
		HomeRegion:       cmd.String("home-region"),
		IdempotentTokens: cmd.Bool("idempotent-tokens"),
	}
	if settings.PortfolioID == "" {
		return fmt.Errorf("%w: use --portfolio or %s", entitlement.ErrMissingPortfolio, entitlement.EnvPortfolioID)
	}

	cfg, err := loadAWSConfig(ctx, cmd)
	if err != nil {
		return err
	}

	p, err := newPropagator(cfg, settings)
	if err != nil {
		return err
	}

	res, err := p.Handle(ctx, ev)
	if err != nil {
		return err
	}

	if cmd.String("output") == "text" && !wantsTable(cmd) {
		w := m.Out()
		fmt.Fprintln(w, res.Summary())
		for _, f := range res.Failed() {
			fmt.Fprintf(w, " %s: %s\n", f.AccountID, f.Error)
		}
		return nil
	}

	return EmitRows(cmd, res.Rows(), m.Out(), propagateDefaultColumns...)
}

// readEvent reads the event document from path, or from stdin when path is
// "-".
func readEvent(path string, stdin io.Reader) ([]byte, error) {
	switch path {
	case "":
		return nil, errNoEvent
	case "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(path)
	}
}

func propagateCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "propagate",
		Usage:     "associate a product and propagate its license grants",
		UsageText: "mpctl propagate [options] <event.json|->",
		Flags: []cli.Flag{
			NewPortfolioFlag("propagate", m.Config.Source),
			NewHomeRegionFlag("propagate", m.Config.Source),
			NewIdempotentTokensFlag("propagate", m.Config.Source),
		},
		Action: propagateCommandAction,
		Meta:   m,
	}).Build()
}
