// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/dustin/go-humanize/english"

	mpaws "github.com/mpctl/mpctl/internal/aws"
	"github.com/mpctl/mpctl/internal/log"
)

// ErrMissingPortfolio is returned when no target portfolio is configured.
var ErrMissingPortfolio = errors.New("portfolio id is required")

// Environment variables read by SettingsFromEnv.
const (
	EnvPortfolioID      = "PORTFOLIO_ID"
	EnvHomeRegion       = "LICENSE_HOME_REGION"
	EnvIdempotentTokens = "IDEMPOTENT_TOKENS"
)

// Settings configures a Propagator.
type Settings struct {
	PortfolioID      string
	HomeRegion       string
	IdempotentTokens bool
}

// SettingsFromEnv reads Settings from the process environment.
func SettingsFromEnv() (Settings, error) {
	s := Settings{
		PortfolioID: strings.TrimSpace(os.Getenv(EnvPortfolioID)),
		HomeRegion:  strings.TrimSpace(os.Getenv(EnvHomeRegion)),
	}
	if v := os.Getenv(EnvIdempotentTokens); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvIdempotentTokens, err)
		}
		s.IdempotentTokens = b
	}
	if s.PortfolioID == "" {
		return Settings{}, fmt.Errorf("%w: set %s", ErrMissingPortfolio, EnvPortfolioID)
	}
	return s, nil
}

// tokenSource picks the TokenSource the settings call for.
func (s Settings) tokenSource() TokenSource {
	if s.IdempotentTokens {
		return NameTokens{}
	}
	return &ClockTokens{}
}

// ServiceCatalogAPI is the Service Catalog surface the propagator uses.
type ServiceCatalogAPI interface {
	PortfolioSharesAPI
	AssociateAPI
}

// Clients bundles the provider clients a Propagator calls.
type Clients struct {
	ServiceCatalog ServiceCatalogAPI
	LicenseManager LicenseManagerAPI
	Organizations  organizations.ListAccountsAPIClient
	STS            CallerIdentityAPI
}

// Result summarizes one propagation run.
type Result struct {
	PortfolioID     string         `json:"portfolio_id"`
	SharePrincipals []string       `json:"share_principals"`
	ProductID       string         `json:"product_id"`
	License         License        `json:"license"`
	Grants          []GrantOutcome `json:"grants"`
}

// Activated counts grants that reached ACTIVE.
func (r Result) Activated() int {
	n := 0
	for _, g := range r.Grants {
		if g.Activated {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that did not reach ACTIVE.
func (r Result) Failed() []GrantOutcome {
	var failed []GrantOutcome
	for _, g := range r.Grants {
		if !g.Activated {
			failed = append(failed, g)
		}
	}
	return failed
}

// Rows returns one output row per grant outcome.
func (r Result) Rows() []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(r.Grants))
	for _, g := range r.Grants {
		rows = append(rows, g.Row())
	}
	return rows
}

// Summary is a one-line human readable account of the run.
func (r Result) Summary() string {
	return fmt.Sprintf("%s activated for %s, %s failed",
		english.Plural(r.Activated(), "grant", ""),
		r.ProductID,
		english.Plural(len(r.Failed()), "account", ""))
}

// Propagator runs share validation, product association and grant
// propagation for one product event.
type Propagator struct {
	settings   Settings
	validator  *ShareValidator
	associator *Associator
	grants     *GrantPropagator
}

// New returns a Propagator over clients.
func New(clients Clients, settings Settings) (*Propagator, error) {
	if settings.PortfolioID == "" {
		return nil, ErrMissingPortfolio
	}
	return &Propagator{
		settings:   settings,
		validator:  NewShareValidator(clients.ServiceCatalog),
		associator: NewAssociator(clients.ServiceCatalog),
		grants: NewGrantPropagator(clients.LicenseManager, clients.Organizations, clients.STS,
			settings.tokenSource(), settings.HomeRegion),
	}, nil
}

// NewFromConfig builds the provider clients from cfg and returns a
// Propagator. License Manager is pinned to the license home region.
func NewFromConfig(cfg awsv2.Config, settings Settings) (*Propagator, error) {
	homeRegion := settings.HomeRegion
	if homeRegion == "" {
		homeRegion = DefaultHomeRegion
	}
	return New(Clients{
		ServiceCatalog: mpaws.NewServiceCatalog(cfg),
		LicenseManager: mpaws.NewLicenseManager(cfg, homeRegion),
		Organizations:  mpaws.NewOrganizations(cfg),
		STS:            mpaws.NewSTS(cfg),
	}, settings)
}

// Handle processes one product event. Steps run in order and a fatal error in
// one step stops the run; the partial Result is returned alongside it.
func (p *Propagator) Handle(ctx context.Context, ev Event) (Result, error) {
	res := Result{PortfolioID: p.settings.PortfolioID}
	log.Infof("triggered by %s event %s from %s", ev.DetailType, ev.EventName(), ev.Source)

	principals, err := p.validator.Validate(ctx, p.settings.PortfolioID)
	if err != nil {
		return res, err
	}
	res.SharePrincipals = principals

	productID, err := p.associator.Associate(ctx, p.settings.PortfolioID, ev)
	if err != nil {
		return res, err
	}
	res.ProductID = productID

	license, grants, err := p.grants.Propagate(ctx, ev)
	res.License = license
	res.Grants = grants
	if err != nil {
		return res, err
	}

	log.Infof("%s", res.Summary())
	return res, nil
}
