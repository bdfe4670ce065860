// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for mpctl's optional
// user configuration. The configuration is a YAML document named by
// MPCTL_CFG_FILE or, failing that, mpctl.yaml in the user's configuration
// directory:
//   - Linux: $XDG_CONFIG_HOME/mpctl.yaml or $HOME/.config/mpctl.yaml
//   - macOS: $HOME/Library/Application Support/mpctl.yaml
//   - Windows: %AppData%/mpctl.yaml
//
// Keys are namespaced by subcommand and fall back to the top level, e.g.
//
//	color: true
//	colors:
//	  title: "#f6be00"
//	eq:
//	  catalog: AWSMarketplace
//	  types: [DataProduct, SaaSProduct]
//	  saas:
//	    - --types SaaSProduct
//	    - --ids
//	propagate:
//	  portfolio: port-abc123
//	  home_region: us-east-1
//	  idempotent_tokens: true
//
// A list under a subcommand (eq.saas above) is an argument set, expanded on
// the command line by @saas.
package config
