// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/licensemanager"
	"github.com/aws/aws-sdk-go-v2/service/marketplacecatalog"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/servicecatalog"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/mpctl/mpctl/internal/log"
)

// DefaultMarketplaceRegion is where the AWS Marketplace catalog and license
// grants for marketplace products live.
const DefaultMarketplaceRegion = "us-east-1"

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region, and retryer without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	log.Debugf("loadOpts built: len=%d", len(loadOpts))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded: region=%s", cfg.Region)
	return cfg, nil
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// NewMarketplaceCatalog constructs a Marketplace Catalog client. The catalog
// API is only served from us-east-1, so the region is pinned unless optFns
// say otherwise.
func NewMarketplaceCatalog(cfg awsv2.Config, optFns ...func(*marketplacecatalog.Options)) *marketplacecatalog.Client {
	optFns = append([]func(*marketplacecatalog.Options){
		func(o *marketplacecatalog.Options) { o.Region = DefaultMarketplaceRegion },
	}, optFns...)
	client := marketplacecatalog.NewFromConfig(cfg, optFns...)
	log.Debugf("marketplacecatalog client created")
	return client
}

// NewServiceCatalog constructs a Service Catalog client in the config's region.
func NewServiceCatalog(cfg awsv2.Config, optFns ...func(*servicecatalog.Options)) *servicecatalog.Client {
	client := servicecatalog.NewFromConfig(cfg, optFns...)
	log.Debugf("servicecatalog client created: region=%s", cfg.Region)
	return client
}

// NewLicenseManager constructs a License Manager client. Grants are created
// against the license's home region, so callers pass it explicitly. An empty
// homeRegion keeps the config's region.
func NewLicenseManager(cfg awsv2.Config, homeRegion string, optFns ...func(*licensemanager.Options)) *licensemanager.Client {
	if homeRegion != "" {
		optFns = append([]func(*licensemanager.Options){
			func(o *licensemanager.Options) { o.Region = homeRegion },
		}, optFns...)
	}
	client := licensemanager.NewFromConfig(cfg, optFns...)
	log.Debugf("licensemanager client created: homeRegion=%s", homeRegion)
	return client
}

// NewOrganizations constructs an Organizations client.
func NewOrganizations(cfg awsv2.Config, optFns ...func(*organizations.Options)) *organizations.Client {
	client := organizations.NewFromConfig(cfg, optFns...)
	log.Debugf("organizations client created")
	return client
}

// NewSTS constructs an STS client.
func NewSTS(cfg awsv2.Config, optFns ...func(*sts.Options)) *sts.Client {
	client := sts.NewFromConfig(cfg, optFns...)
	log.Debugf("sts client created")
	return client
}
