// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"context"
	"errors"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/licensemanager"
	lmtypes "github.com/aws/aws-sdk-go-v2/service/licensemanager/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/mpctl/mpctl/internal/log"
)

// ErrLicenseNotFound is returned when no received license matches the
// product name.
var ErrLicenseNotFound = errors.New("no received license matches product")

// DefaultHomeRegion is the home region of marketplace licenses.
const DefaultHomeRegion = "us-east-1"

// AllowedOperations are granted to every linked account.
var AllowedOperations = []lmtypes.AllowedOperation{
	lmtypes.AllowedOperationCheckoutLicense,
	lmtypes.AllowedOperationCheckInLicense,
	lmtypes.AllowedOperationExtendConsumptionLicense,
	lmtypes.AllowedOperationListPurchasedLicenses,
}

// LicenseManagerAPI is the slice of the License Manager client the grant
// propagator needs.
type LicenseManagerAPI interface {
	ListReceivedLicenses(ctx context.Context, params *licensemanager.ListReceivedLicensesInput,
		optFns ...func(*licensemanager.Options)) (*licensemanager.ListReceivedLicensesOutput, error)
	CreateGrant(ctx context.Context, params *licensemanager.CreateGrantInput,
		optFns ...func(*licensemanager.Options)) (*licensemanager.CreateGrantOutput, error)
	CreateGrantVersion(ctx context.Context, params *licensemanager.CreateGrantVersionInput,
		optFns ...func(*licensemanager.Options)) (*licensemanager.CreateGrantVersionOutput, error)
}

// CallerIdentityAPI resolves the account the process runs as.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// License is a received license matched to a product.
type License struct {
	ProductName string `json:"product_name"`
	LicenseArn  string `json:"license_arn"`
}

// GrantOutcome records what happened for one linked account.
type GrantOutcome struct {
	AccountID string `json:"account_id"`
	GrantArn  string `json:"grant_arn,omitempty"`
	Created   bool   `json:"created"`
	Activated bool   `json:"activated"`
	Error     string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

// Row returns the outcome keyed by its output attribute names.
func (o GrantOutcome) Row() map[string]interface{} {
	return map[string]interface{}{
		"account_id": o.AccountID,
		"grant_arn":  o.GrantArn,
		"created":    o.Created,
		"activated":  o.Activated,
		"error":      o.Error,
	}
}

// GrantPropagator creates and activates a license grant for every account in
// the organization other than the caller's own.
type GrantPropagator struct {
	licenses   LicenseManagerAPI
	accounts   organizations.ListAccountsAPIClient
	identity   CallerIdentityAPI
	tokens     TokenSource
	homeRegion string
}

// NewGrantPropagator returns a GrantPropagator. A nil tokens uses ClockTokens
// and an empty homeRegion uses DefaultHomeRegion.
func NewGrantPropagator(
	licenses LicenseManagerAPI,
	accounts organizations.ListAccountsAPIClient,
	identity CallerIdentityAPI,
	tokens TokenSource,
	homeRegion string,
) *GrantPropagator {
	if tokens == nil {
		tokens = &ClockTokens{}
	}
	if homeRegion == "" {
		homeRegion = DefaultHomeRegion
	}
	return &GrantPropagator{
		licenses:   licenses,
		accounts:   accounts,
		identity:   identity,
		tokens:     tokens,
		homeRegion: homeRegion,
	}
}

// FindLicense walks every page of received licenses and returns the first
// whose product name equals productName exactly.
func (g *GrantPropagator) FindLicense(ctx context.Context, productName string) (License, error) {
	input := &licensemanager.ListReceivedLicensesInput{}
	for {
		out, err := g.licenses.ListReceivedLicenses(ctx, input)
		if err != nil {
			return License{}, fmt.Errorf("list received licenses: %w", err)
		}

		for _, l := range out.Licenses {
			if awsv2.ToString(l.ProductName) == productName {
				found := License{ProductName: productName, LicenseArn: awsv2.ToString(l.LicenseArn)}
				log.Infof("license found: %s", found.LicenseArn)
				return found, nil
			}
		}

		if awsv2.ToString(out.NextToken) == "" {
			break
		}
		input.NextToken = out.NextToken
	}

	return License{}, fmt.Errorf("%w %q", ErrLicenseNotFound, productName)
}

// CallerAccount returns the account ID of the caller.
func (g *GrantPropagator) CallerAccount(ctx context.Context) (string, error) {
	out, err := g.identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("get caller identity: %w", err)
	}
	return awsv2.ToString(out.Account), nil
}

// Propagate grants the event's product license to every linked account. A
// malformed event, a missing license, or a failure to resolve the caller or
// list accounts is returned as an error. Per-account grant failures are
// logged and recorded in the outcomes; the loop always moves on.
func (g *GrantPropagator) Propagate(ctx context.Context, ev Event) (License, []GrantOutcome, error) {
	productName, err := ev.ProductName()
	if err != nil {
		return License{}, nil, err
	}
	log.Infof("finding license for product %s", productName)

	license, err := g.FindLicense(ctx, productName)
	if err != nil {
		return License{}, nil, err
	}

	caller, err := g.CallerAccount(ctx)
	if err != nil {
		return license, nil, err
	}

	var outcomes []GrantOutcome
	p := organizations.NewListAccountsPaginator(g.accounts, &organizations.ListAccountsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return license, outcomes, fmt.Errorf("list accounts: %w", err)
		}

		for _, account := range page.Accounts {
			id := awsv2.ToString(account.Id)
			log.Debugf("account: id=%s name=%s status=%s", id, awsv2.ToString(account.Name), account.Status)

			if id == caller {
				continue
			}
			if err := ctx.Err(); err != nil {
				return license, outcomes, err
			}

			outcomes = append(outcomes, g.grant(ctx, license, id))
		}
	}

	return license, outcomes, nil
}

// grant creates a grant for accountID and then activates it. Errors end up in
// the outcome, never as a return value.
func (g *GrantPropagator) grant(ctx context.Context, license License, accountID string) GrantOutcome {
	outcome := GrantOutcome{AccountID: accountID}
	fail := func(step string, err error) GrantOutcome {
		log.WithError(err).Errorf("%s for account %s", step, accountID)
		outcome.Err = err
		outcome.Error = err.Error()
		return outcome
	}

	created, err := g.licenses.CreateGrant(ctx, &licensemanager.CreateGrantInput{
		ClientToken:       awsv2.String(g.tokens.Token(OpCreateGrant, license.LicenseArn, accountID)),
		GrantName:         awsv2.String(license.ProductName + "-" + accountID),
		LicenseArn:        awsv2.String(license.LicenseArn),
		Principals:        []string{PrincipalArn(accountID)},
		HomeRegion:        awsv2.String(g.homeRegion),
		AllowedOperations: AllowedOperations,
	})
	if err != nil {
		return fail("create grant", err)
	}
	outcome.Created = true
	outcome.GrantArn = awsv2.ToString(created.GrantArn)
	log.Infof("grant created: arn=%s status=%s", outcome.GrantArn, created.Status)

	activated, err := g.licenses.CreateGrantVersion(ctx, &licensemanager.CreateGrantVersionInput{
		ClientToken: awsv2.String(g.tokens.Token(OpActivateGrant, license.LicenseArn, accountID)),
		GrantArn:    created.GrantArn,
		Status:      lmtypes.GrantStatusActive,
	})
	if err != nil {
		return fail("activate grant", err)
	}
	outcome.Activated = true
	log.Infof("grant version created: arn=%s version=%s status=%s",
		outcome.GrantArn, awsv2.ToString(activated.Version), activated.Status)

	return outcome
}

// PrincipalArn is the root principal of accountID.
func PrincipalArn(accountID string) string {
	return "arn:aws:iam::" + accountID + ":root"
}
