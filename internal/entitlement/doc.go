// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package entitlement reacts to a marketplace product being copied into
// Service Catalog. It checks that the target portfolio is shared with the
// organization, associates the product with the portfolio and grants the
// product's license to every linked account.
//
// Everything runs sequentially within a single invocation and nothing is
// persisted between invocations. A grant that was created but could not be
// activated is left as is and only reported.
package entitlement
