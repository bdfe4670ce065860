// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/servicecatalog"

	mpaws "github.com/mpctl/mpctl/internal/aws"
	"github.com/mpctl/mpctl/internal/log"
)

// AssociateAPI is the Service Catalog call the associator makes.
type AssociateAPI interface {
	AssociateProductWithPortfolio(ctx context.Context, params *servicecatalog.AssociateProductWithPortfolioInput,
		optFns ...func(*servicecatalog.Options)) (*servicecatalog.AssociateProductWithPortfolioOutput, error)
}

// Associator adds the product named by an event to a portfolio.
type Associator struct {
	client AssociateAPI
}

// NewAssociator returns an Associator using client.
func NewAssociator(client AssociateAPI) *Associator {
	return &Associator{client: client}
}

// Associate associates the event's product with portfolioID and returns the
// product ID. A malformed event is an error. ResourceNotFound is logged and
// swallowed; other provider errors are returned.
func (a *Associator) Associate(ctx context.Context, portfolioID string, ev Event) (string, error) {
	productID, err := ev.ProductID()
	if err != nil {
		return "", err
	}

	_, err = a.client.AssociateProductWithPortfolio(ctx, &servicecatalog.AssociateProductWithPortfolioInput{
		ProductId:   awsv2.String(productID),
		PortfolioId: awsv2.String(portfolioID),
	})
	if err != nil {
		if mpaws.Classify(err) == mpaws.KindResourceNotFound {
			log.WithError(err).Errorf("associate %s with %s", productID, portfolioID)
			return productID, nil
		}
		return "", fmt.Errorf("associate %s with %s: %w", productID, portfolioID, err)
	}

	log.Infof("%s is associated with portfolio %s", productID, portfolioID)
	return productID, nil
}
