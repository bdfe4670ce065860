// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/mpctl/mpctl/internal/catalog"
	"github.com/mpctl/mpctl/internal/entitlement"
)

// NewSchemaFlag constructs the --schema flag.
func NewSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the output attributes",
		HideDefault: true,
	}
}

func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewAWSFlags returns the --profile and --region flags. Both fall back to the
// config file when path is set; the SDK's own environment handling applies
// when neither is given.
func NewAWSFlags(ns string, path string) []cli.Flag {
	profile := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "shared config profile to use",
		Sources: cli.NewValueSourceChain(),
	}
	region := &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "region for regional clients",
		Sources: cli.NewValueSourceChain(),
		Validator: func(value string) error {
			return FlagValidators(value, RegionValidator)
		},
	}

	if path != "" {
		NameSpacedValueChainFlagFromConfigFile(ns, path, &profile.Sources, profile.Name)
		NameSpacedValueChainFlagFromConfigFile(ns, path, &region.Sources, region.Name)
	}

	return []cli.Flag{profile, region}
}

// NewCatalogFlag constructs the eq --catalog flag.
func NewCatalogFlag(ns string, path string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "catalog",
		Usage:   "marketplace catalog to enumerate",
		Sources: cli.NewValueSourceChain(cli.EnvVar("MPCTL_CATALOG")),
		Value:   catalog.DefaultCatalog,
	}
	if path != "" {
		NameSpacedValueChainFlagFromConfigFile(ns, path, &flag.Sources, flag.Name)
	}
	return flag
}

// NewTypesFlag constructs the eq --types flag. Config file lists are resolved
// by the action since YAML sequences do not map onto a flag value source.
func NewTypesFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "types",
		Usage:   "entity types to enumerate",
		Sources: cli.EnvVars("MPCTL_TYPES"),
		Value:   catalog.DefaultEntityTypes,
	}
}

// NewPortfolioFlag constructs the propagate --portfolio flag. It reads the
// same PORTFOLIO_ID variable as the Lambda.
func NewPortfolioFlag(ns string, path string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "portfolio",
		Usage:   "Service Catalog portfolio to associate products with",
		Sources: cli.NewValueSourceChain(cli.EnvVar(entitlement.EnvPortfolioID)),
	}
	if path != "" {
		NameSpacedValueChainFlagFromConfigFile(ns, path, &flag.Sources, flag.Name)
	}
	return flag
}

// NewHomeRegionFlag constructs the propagate --home-region flag.
func NewHomeRegionFlag(ns string, path string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "home-region",
		Usage:   "home region of the marketplace licenses",
		Sources: cli.NewValueSourceChain(cli.EnvVar(entitlement.EnvHomeRegion)),
		Value:   entitlement.DefaultHomeRegion,
		Validator: func(value string) error {
			return FlagValidators(value, RegionValidator)
		},
	}
	if path != "" {
		NameSpacedValueChainFlagFromConfigFile(ns, path, &flag.Sources, flag.Name)
	}
	return flag
}

// NewIdempotentTokensFlag constructs the propagate --idempotent-tokens flag.
func NewIdempotentTokensFlag(ns string, path string) *cli.BoolFlag {
	flag := &cli.BoolFlag{
		Name:    "idempotent-tokens",
		Usage:   "derive grant client tokens from product and account so retries do not duplicate grants",
		Sources: cli.NewValueSourceChain(cli.EnvVar(entitlement.EnvIdempotentTokens)),
	}
	if path != "" {
		NameSpacedValueChainFlagFromConfigFile(ns, path, &flag.Sources, flag.Name)
	}
	return flag
}

// NameSpacedValueChainFlagFromConfigFile appends namespaced and global config
// file sources for the named flag to chain. Dashes in the flag name become
// underscores in the config key.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, chain *cli.ValueSourceChain, name string) {
	key := configKey(name)

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))
}

// configKey maps a flag name onto its config file key.
func configKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
