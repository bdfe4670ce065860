// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package catalog enumerates AWS Marketplace catalog entities by entity type.
// Each type gets exactly one listing call; types the caller may not list are
// reported as skipped and enumeration carries on.
package catalog
