// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/licensemanager"
	"github.com/aws/aws-sdk-go-v2/service/marketplacecatalog"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_CallerIdentity verifies credentials resolve to a real
// account. Requires AWS credentials in the environment.
func TestIntegration_CallerIdentity(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadAWSConfig(ctx, WithRegion(DefaultMarketplaceRegion))
	require.NoError(t, err)

	out, err := NewSTS(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	require.NoError(t, err)
	assert.NotEmpty(t, awsv2.ToString(out.Account))
}

// TestIntegration_ListEntities verifies the catalog listing either succeeds or
// fails with one of the kinds the enumerator swallows.
func TestIntegration_ListEntities(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadAWSConfig(ctx)
	require.NoError(t, err)

	_, err = NewMarketplaceCatalog(cfg).ListEntities(ctx, &marketplacecatalog.ListEntitiesInput{
		Catalog:    awsv2.String("AWSMarketplace"),
		EntityType: awsv2.String("DataProduct"),
	})
	if err != nil {
		assert.True(t, IsKind(err, KindAccessDenied, KindValidation), "unexpected error: %v", err)
	}
}

// TestIntegration_ListReceivedLicenses verifies the license listing call in
// the marketplace home region.
func TestIntegration_ListReceivedLicenses(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadAWSConfig(ctx)
	require.NoError(t, err)

	_, err = NewLicenseManager(cfg, DefaultMarketplaceRegion).
		ListReceivedLicenses(ctx, &licensemanager.ListReceivedLicensesInput{})
	require.NoError(t, err)
}

// TestIntegration_ListAccounts verifies the organizations paginator yields at
// least the caller's own account. Requires running in the management account.
func TestIntegration_ListAccounts(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadAWSConfig(ctx)
	require.NoError(t, err)

	p := organizations.NewListAccountsPaginator(NewOrganizations(cfg), &organizations.ListAccountsInput{})
	require.True(t, p.HasMorePages())

	page, err := p.NextPage(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, page.Accounts)
}
