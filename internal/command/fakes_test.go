// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/licensemanager"
	lmtypes "github.com/aws/aws-sdk-go-v2/service/licensemanager/types"
	"github.com/aws/aws-sdk-go-v2/service/marketplacecatalog"
	mctypes "github.com/aws/aws-sdk-go-v2/service/marketplacecatalog/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/aws-sdk-go-v2/service/servicecatalog"
	sctypes "github.com/aws/aws-sdk-go-v2/service/servicecatalog/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/mpctl/mpctl/internal/catalog"
	"github.com/mpctl/mpctl/internal/config"
	"github.com/mpctl/mpctl/internal/entitlement"
	"github.com/mpctl/mpctl/internal/meta"
)

const productEvent = `{
  "source": "aws.servicecatalog",
  "detail-type": "AWS API Call via CloudTrail",
  "detail": {
    "eventName": "CopyProduct",
    "responseElements": {
      "productViewDetail": {
        "productViewSummary": {"productId": "prod-1", "name": "Weather"}
      }
    }
  }
}`

// isolate points config at a missing file and clears every environment
// variable a flag reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))
	for _, k := range []string{
		"MPCTL_CATALOG", "MPCTL_TYPES",
		entitlement.EnvPortfolioID, entitlement.EnvHomeRegion, entitlement.EnvIdempotentTokens,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

// withConfigFile writes body as the config file.
func withConfigFile(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mpctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv(config.EnvConfigFile, path)
	config.Config = config.Type{}
}

// stubAWS replaces provider wiring for the duration of the test.
func stubAWS(t *testing.T, cat *fakeCatalog, w *fakeWorld) {
	t.Helper()
	origLoad, origEnum, origProp := loadAWSConfig, newEnumerator, newPropagator
	t.Cleanup(func() { loadAWSConfig, newEnumerator, newPropagator = origLoad, origEnum, origProp })

	loadAWSConfig = func(context.Context, *cli.Command) (awsv2.Config, error) {
		return awsv2.Config{Region: "us-east-1"}, nil
	}
	newEnumerator = func(_ awsv2.Config, name string) *catalog.Enumerator {
		cat.catalogName = name
		return catalog.NewEnumerator(cat, name)
	}
	newPropagator = func(_ awsv2.Config, s entitlement.Settings) (*entitlement.Propagator, error) {
		w.settings = s
		return entitlement.New(entitlement.Clients{
			ServiceCatalog: w,
			LicenseManager: w,
			Organizations:  w,
			STS:            w,
		}, s)
	}
}

// run executes mpctl with args and returns what it wrote.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	full := append([]string{"mpctl"}, args...)

	app, err := initApp(meta.Meta{
		Args:    full,
		Context: context.Background(),
		Stdin:   strings.NewReader(stdin),
		Stdout:  &out,
	})
	require.NoError(t, err)

	err = app.Run(context.Background(), full)
	return out.String(), err
}

type fakeCatalog struct {
	entities map[string][]mctypes.EntitySummary
	errs     map[string]error

	catalogName string
	calls       []string
}

func (f *fakeCatalog) ListEntities(_ context.Context, in *marketplacecatalog.ListEntitiesInput,
	_ ...func(*marketplacecatalog.Options)) (*marketplacecatalog.ListEntitiesOutput, error) {
	t := awsv2.ToString(in.EntityType)
	f.calls = append(f.calls, t)
	if err := f.errs[t]; err != nil {
		return nil, err
	}
	return &marketplacecatalog.ListEntitiesOutput{EntitySummaryList: f.entities[t]}, nil
}

func entity(id, name, typ string) mctypes.EntitySummary {
	return mctypes.EntitySummary{
		EntityId:   awsv2.String(id),
		Name:       awsv2.String(name),
		EntityType: awsv2.String(typ),
	}
}

// fakeWorld plays every provider the propagator calls: an organization of
// accounts A (the caller), B and C, and one license for Weather.
type fakeWorld struct {
	settings entitlement.Settings
	grantErr error

	associated []string
	granted    []string
}

func (w *fakeWorld) DescribePortfolioShares(_ context.Context, in *servicecatalog.DescribePortfolioSharesInput,
	_ ...func(*servicecatalog.Options)) (*servicecatalog.DescribePortfolioSharesOutput, error) {
	out := &servicecatalog.DescribePortfolioSharesOutput{}
	if in.Type == sctypes.DescribePortfolioShareTypeOrganization {
		out.PortfolioShareDetails = []sctypes.PortfolioShareDetail{{PrincipalId: awsv2.String("o-root")}}
	}
	return out, nil
}

func (w *fakeWorld) AssociateProductWithPortfolio(_ context.Context, in *servicecatalog.AssociateProductWithPortfolioInput,
	_ ...func(*servicecatalog.Options)) (*servicecatalog.AssociateProductWithPortfolioOutput, error) {
	w.associated = append(w.associated, awsv2.ToString(in.ProductId)+"@"+awsv2.ToString(in.PortfolioId))
	return &servicecatalog.AssociateProductWithPortfolioOutput{}, nil
}

func (w *fakeWorld) ListReceivedLicenses(context.Context, *licensemanager.ListReceivedLicensesInput,
	...func(*licensemanager.Options)) (*licensemanager.ListReceivedLicensesOutput, error) {
	return &licensemanager.ListReceivedLicensesOutput{
		Licenses: []lmtypes.GrantedLicense{{ProductName: awsv2.String("Weather"), LicenseArn: awsv2.String("lic:123")}},
	}, nil
}

func (w *fakeWorld) CreateGrant(_ context.Context, in *licensemanager.CreateGrantInput,
	_ ...func(*licensemanager.Options)) (*licensemanager.CreateGrantOutput, error) {
	if in.Principals[0] == "arn:aws:iam::C:root" && w.grantErr != nil {
		return nil, w.grantErr
	}
	w.granted = append(w.granted, awsv2.ToString(in.GrantName))
	return &licensemanager.CreateGrantOutput{GrantArn: awsv2.String("grant:" + awsv2.ToString(in.GrantName))}, nil
}

func (w *fakeWorld) CreateGrantVersion(_ context.Context, in *licensemanager.CreateGrantVersionInput,
	_ ...func(*licensemanager.Options)) (*licensemanager.CreateGrantVersionOutput, error) {
	return &licensemanager.CreateGrantVersionOutput{Version: awsv2.String("2"), Status: in.Status}, nil
}

func (w *fakeWorld) ListAccounts(context.Context, *organizations.ListAccountsInput,
	...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	var accounts []orgtypes.Account
	for _, id := range []string{"A", "B", "C"} {
		accounts = append(accounts, orgtypes.Account{Id: awsv2.String(id), Status: orgtypes.AccountStatusActive})
	}
	return &organizations.ListAccountsOutput{Accounts: accounts}, nil
}

func (w *fakeWorld) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput,
	...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{Account: awsv2.String("A")}, nil
}

