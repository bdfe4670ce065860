// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package entitlement

import (
	"context"
	"fmt"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/licensemanager"
	lmtypes "github.com/aws/aws-sdk-go-v2/service/licensemanager/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/aws-sdk-go-v2/service/servicecatalog"
	sctypes "github.com/aws/aws-sdk-go-v2/service/servicecatalog/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/require"
)

// productEvent builds an EventBridge envelope for a copied product.
func productEvent(productID, name string) []byte {
	return []byte(fmt.Sprintf(`{
  "version": "0",
  "source": "aws.servicecatalog",
  "detail-type": "AWS API Call via CloudTrail",
  "detail": {
    "eventName": "CopyProduct",
    "responseElements": {
      "productViewDetail": {
        "productViewSummary": {
          "productId": %q,
          "name": %q
        }
      }
    }
  }
}`, productID, name))
}

func mustEvent(t *testing.T, raw []byte) Event {
	t.Helper()
	ev, err := ParseEvent(raw)
	require.NoError(t, err)
	return ev
}

// fakeServiceCatalog serves share details per scope and records calls.
type fakeServiceCatalog struct {
	shares       map[sctypes.DescribePortfolioShareType][]sctypes.PortfolioShareDetail
	sharesErr    error
	associateErr error

	shareCalls     []sctypes.DescribePortfolioShareType
	associateCalls []servicecatalog.AssociateProductWithPortfolioInput
}

func (f *fakeServiceCatalog) DescribePortfolioShares(_ context.Context, in *servicecatalog.DescribePortfolioSharesInput,
	_ ...func(*servicecatalog.Options)) (*servicecatalog.DescribePortfolioSharesOutput, error) {
	f.shareCalls = append(f.shareCalls, in.Type)
	if f.sharesErr != nil {
		return nil, f.sharesErr
	}
	return &servicecatalog.DescribePortfolioSharesOutput{PortfolioShareDetails: f.shares[in.Type]}, nil
}

func (f *fakeServiceCatalog) AssociateProductWithPortfolio(_ context.Context, in *servicecatalog.AssociateProductWithPortfolioInput,
	_ ...func(*servicecatalog.Options)) (*servicecatalog.AssociateProductWithPortfolioOutput, error) {
	f.associateCalls = append(f.associateCalls, *in)
	if f.associateErr != nil {
		return nil, f.associateErr
	}
	return &servicecatalog.AssociateProductWithPortfolioOutput{}, nil
}

// fakeLicenseManager serves license pages and records grant calls. Errors are
// injected per principal ARN for CreateGrant and per account ID for
// CreateGrantVersion.
type fakeLicenseManager struct {
	pages      [][]lmtypes.GrantedLicense
	listErr    error
	createErr  map[string]error
	versionErr map[string]error

	listCalls    int
	createCalls  []licensemanager.CreateGrantInput
	versionCalls []licensemanager.CreateGrantVersionInput
}

func (f *fakeLicenseManager) ListReceivedLicenses(_ context.Context, in *licensemanager.ListReceivedLicensesInput,
	_ ...func(*licensemanager.Options)) (*licensemanager.ListReceivedLicensesOutput, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	idx := 0
	if in.NextToken != nil {
		fmt.Sscanf(*in.NextToken, "page-%d", &idx)
	}
	out := &licensemanager.ListReceivedLicensesOutput{}
	if idx < len(f.pages) {
		out.Licenses = f.pages[idx]
	}
	if idx+1 < len(f.pages) {
		out.NextToken = awsv2.String(fmt.Sprintf("page-%d", idx+1))
	}
	return out, nil
}

func (f *fakeLicenseManager) CreateGrant(_ context.Context, in *licensemanager.CreateGrantInput,
	_ ...func(*licensemanager.Options)) (*licensemanager.CreateGrantOutput, error) {
	f.createCalls = append(f.createCalls, *in)
	if err := f.createErr[in.Principals[0]]; err != nil {
		return nil, err
	}
	return &licensemanager.CreateGrantOutput{
		GrantArn: awsv2.String("arn:aws:license-manager::grant:" + awsv2.ToString(in.GrantName)),
		Status:   lmtypes.GrantStatusPendingWorkflow,
		Version:  awsv2.String("1"),
	}, nil
}

func (f *fakeLicenseManager) CreateGrantVersion(_ context.Context, in *licensemanager.CreateGrantVersionInput,
	_ ...func(*licensemanager.Options)) (*licensemanager.CreateGrantVersionOutput, error) {
	f.versionCalls = append(f.versionCalls, *in)
	arn := awsv2.ToString(in.GrantArn)
	if err := f.versionErr[arn[strings.LastIndex(arn, "-")+1:]]; err != nil {
		return nil, err
	}
	return &licensemanager.CreateGrantVersionOutput{
		GrantArn: in.GrantArn,
		Status:   in.Status,
		Version:  awsv2.String("2"),
	}, nil
}

// fakeOrganizations serves account pages keyed by NextToken.
type fakeOrganizations struct {
	pages [][]string
	err   error
	calls int
}

func (f *fakeOrganizations) ListAccounts(_ context.Context, in *organizations.ListAccountsInput,
	_ ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	idx := 0
	if in.NextToken != nil {
		fmt.Sscanf(*in.NextToken, "page-%d", &idx)
	}
	out := &organizations.ListAccountsOutput{}
	if idx < len(f.pages) {
		for _, id := range f.pages[idx] {
			out.Accounts = append(out.Accounts, orgtypes.Account{Id: awsv2.String(id), Name: awsv2.String("acct-" + id)})
		}
	}
	if idx+1 < len(f.pages) {
		out.NextToken = awsv2.String(fmt.Sprintf("page-%d", idx+1))
	}
	return out, nil
}

// fakeSTS returns a fixed caller account.
type fakeSTS struct {
	account string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput,
	_ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: awsv2.String(f.account)}, nil
}

// sequenceTokens hands out distinct, predictable tokens.
type sequenceTokens struct{ n int }

func (s *sequenceTokens) Token(op, _, accountID string) string {
	s.n++
	return fmt.Sprintf("%s-%s-%d", op, accountID, s.n)
}
