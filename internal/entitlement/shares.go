// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/servicecatalog"
	"github.com/aws/aws-sdk-go-v2/service/servicecatalog/types"

	mpaws "github.com/mpctl/mpctl/internal/aws"
	"github.com/mpctl/mpctl/internal/log"
)

// PortfolioSharesAPI is the Service Catalog call the share validator makes.
type PortfolioSharesAPI interface {
	DescribePortfolioShares(ctx context.Context, params *servicecatalog.DescribePortfolioSharesInput,
		optFns ...func(*servicecatalog.Options)) (*servicecatalog.DescribePortfolioSharesOutput, error)
}

// shareScopes is the order in which share scopes are checked.
var shareScopes = []types.DescribePortfolioShareType{
	types.DescribePortfolioShareTypeOrganization,
	types.DescribePortfolioShareTypeOrganizationalUnit,
}

// ShareValidator checks that a portfolio is shared with the organization or
// one of its OUs.
type ShareValidator struct {
	client PortfolioSharesAPI
}

// NewShareValidator returns a ShareValidator using client.
func NewShareValidator(client PortfolioSharesAPI) *ShareValidator {
	return &ShareValidator{client: client}
}

// Validate returns the principal of the first share found, checking the
// organization scope before the OU scope and stopping at the first scope with
// a share. An unshared portfolio logs a warning and returns an empty slice.
// AccessDenied is logged and swallowed; other provider errors are returned.
func (v *ShareValidator) Validate(ctx context.Context, portfolioID string) ([]string, error) {
	principals := []string{}

	for _, scope := range shareScopes {
		out, err := v.client.DescribePortfolioShares(ctx, &servicecatalog.DescribePortfolioSharesInput{
			PortfolioId: awsv2.String(portfolioID),
			Type:        scope,
		})
		if err != nil {
			if mpaws.Classify(err) == mpaws.KindAccessDenied {
				log.Warnf("missing DescribePortfolioShares permission on %s", portfolioID)
				return principals, nil
			}
			return nil, fmt.Errorf("describe %s shares of %s: %w", scope, portfolioID, err)
		}

		if len(out.PortfolioShareDetails) > 0 {
			principals = append(principals, awsv2.ToString(out.PortfolioShareDetails[0].PrincipalId))
			log.Infof("%s is shared with %v (%s)", portfolioID, principals, scope)
			return principals, nil
		}
		log.Debugf("no %s shares: portfolio=%s", scope, portfolioID)
	}

	log.Warnf("marketplace portfolio %s must be shared across the organization", portfolioID)
	return principals, nil
}
