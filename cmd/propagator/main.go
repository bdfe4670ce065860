// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command propagator is the Lambda function behind the EventBridge rule on
// Service Catalog CopyProduct and CreateProduct calls. It associates the new
// product with the configured portfolio and grants its license to every
// account in the organization.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"

	mpaws "github.com/mpctl/mpctl/internal/aws"
	"github.com/mpctl/mpctl/internal/entitlement"
	"github.com/mpctl/mpctl/internal/log"
	"github.com/mpctl/mpctl/internal/version"
)

// maxAttempts bounds SDK retries per call.
const maxAttempts = 8

// productEventHandler runs one product event.
type productEventHandler interface {
	Handle(ctx context.Context, ev entitlement.Event) (entitlement.Result, error)
}

// Handler adapts a productEventHandler to the Lambda runtime.
type Handler struct {
	propagator productEventHandler
}

// HandleRequest processes one EventBridge delivery. A returned error fails the
// invocation so the trigger's retry and error reporting apply.
func (h Handler) HandleRequest(ctx context.Context, ev events.CloudWatchEvent) (entitlement.Result, error) {
	log.Debugf("event id=%s source=%s detail-type=%s", ev.ID, ev.Source, ev.DetailType)

	res, err := h.propagator.Handle(ctx, entitlement.FromCloudWatchEvent(ev))
	if err != nil {
		log.WithError(err).Errorf("propagation failed for portfolio %s", res.PortfolioID)
		return res, err
	}

	for _, f := range res.Failed() {
		log.Warnf("account %s not granted: %s", f.AccountID, f.Error)
	}
	return res, nil
}

func main() {
	log.InitLogger("info")
	log.Infof("propagator %s starting", version.String())

	// Create temporary context to initialize the handler with.
	initContext := context.TODO()

	settings, err := entitlement.SettingsFromEnv()
	if err != nil {
		log.Errorf("invalid settings: %v", err)
		os.Exit(1)
	}

	cfg, err := mpaws.LoadAWSConfig(initContext, mpaws.WithRetryer(func() awsv2.Retryer {
		return retry.AddWithMaxAttempts(retry.NewStandard(), maxAttempts)
	}))
	if err != nil {
		log.Errorf("failed to load AWS config: %v", err)
		os.Exit(1)
	}

	p, err := entitlement.NewFromConfig(cfg, settings)
	if err != nil {
		log.Errorf("failed to initialize propagator: %v", err)
		os.Exit(1)
	}

	lambda.Start(Handler{propagator: p}.HandleRequest)
}
