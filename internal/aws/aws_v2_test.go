// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/licensemanager"
	"github.com/aws/aws-sdk-go-v2/service/marketplacecatalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateAWSEnv keeps LoadAWSConfig away from the developer's shared config so
// the tests behave the same everywhere.
func isolateAWSEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", t.TempDir()+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", t.TempDir()+"/credentials")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
}

// TestOptions verifies that the functional options populate the options
// struct and that later options override earlier ones.
func TestOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option
		wantProfile string
		wantRegion  string
	}{
		{
			name: "none",
		},
		{
			name:        "profile only",
			opts:        []Option{WithProfile("payer")},
			wantProfile: "payer",
		},
		{
			name:       "region only",
			opts:       []Option{WithRegion("eu-west-1")},
			wantRegion: "eu-west-1",
		},
		{
			name:        "last region wins",
			opts:        []Option{WithProfile("payer"), WithRegion("us-east-1"), WithRegion("us-west-2")},
			wantProfile: "payer",
			wantRegion:  "us-west-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o options
			for _, opt := range tt.opts {
				opt(&o)
			}
			assert.Equal(t, tt.wantProfile, o.profile)
			assert.Equal(t, tt.wantRegion, o.region)
		})
	}
}

// TestWithRetryer verifies that WithRetryer sets the retryer function
// option.
func TestWithRetryer(t *testing.T) {
	var o options
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&o)

	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

// TestLoadAWSConfig_WithRegion verifies that region option is applied
// during config loading.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	isolateAWSEnv(t)

	cfg, err := LoadAWSConfig(context.Background(),
		WithRegion("eu-central-1"),
		WithRetryer(func() awsv2.Retryer { return retry.NewStandard() }),
	)

	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
}

// TestLoadAWSConfig_MissingProfile verifies that a named profile absent from
// the shared config surfaces as an error.
func TestLoadAWSConfig_MissingProfile(t *testing.T) {
	isolateAWSEnv(t)

	_, err := LoadAWSConfig(context.Background(), WithProfile("does-not-exist"))
	assert.Error(t, err)
}

// TestNewMarketplaceCatalog_PinsRegion verifies the catalog client always
// targets us-east-1 unless the caller overrides it.
func TestNewMarketplaceCatalog_PinsRegion(t *testing.T) {
	cfg := awsv2.Config{Region: "eu-west-1"}

	client := NewMarketplaceCatalog(cfg)
	assert.Equal(t, DefaultMarketplaceRegion, client.Options().Region)

	client = NewMarketplaceCatalog(cfg, func(o *marketplacecatalog.Options) { o.Region = "us-west-2" })
	assert.Equal(t, "us-west-2", client.Options().Region)
}

// TestNewLicenseManager_HomeRegion verifies the home region override and the
// fallback to the config's region.
func TestNewLicenseManager_HomeRegion(t *testing.T) {
	cfg := awsv2.Config{Region: "ap-southeast-2"}

	assert.Equal(t, "us-east-1", NewLicenseManager(cfg, "us-east-1").Options().Region)
	assert.Equal(t, "ap-southeast-2", NewLicenseManager(cfg, "").Options().Region)
	assert.IsType(t, &licensemanager.Client{}, NewLicenseManager(cfg, ""))
}

// TestClientConstructors verifies the remaining constructors honour the
// config's region.
func TestClientConstructors(t *testing.T) {
	cfg := awsv2.Config{Region: "eu-north-1"}

	assert.Equal(t, "eu-north-1", NewServiceCatalog(cfg).Options().Region)
	assert.Equal(t, "eu-north-1", NewOrganizations(cfg).Options().Region)
	assert.Equal(t, "eu-north-1", NewSTS(cfg).Options().Region)
}
