// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"
	"os"

	"github.com/mpctl/mpctl/internal/config"
)

// Meta contains runtime metadata shared by commands: the CLI arguments, the
// loaded configuration, the root context and the streams commands read from
// and write to.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
}

// In returns the input stream, defaulting to os.Stdin.
func (m Meta) In() io.Reader {
	if m.Stdin == nil {
		return os.Stdin
	}
	return m.Stdin
}

// Out returns the output stream, defaulting to os.Stdout.
func (m Meta) Out() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}
