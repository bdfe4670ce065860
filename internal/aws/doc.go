// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK configuration, constructs the service clients the
// commands use (Marketplace Catalog, Service Catalog, License Manager,
// Organizations, STS) and classifies provider errors into a closed set of
// kinds.
package aws
