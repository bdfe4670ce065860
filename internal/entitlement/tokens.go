// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token operations.
const (
	OpCreateGrant   = "create-grant"
	OpActivateGrant = "activate-grant"
)

// TokenSource produces the client tokens License Manager uses to deduplicate
// grant requests.
type TokenSource interface {
	Token(op, licenseArn, accountID string) string
}

// ClockTokens derives a token from the current time in milliseconds. Tokens
// from one ClockTokens never repeat: a call landing in the same millisecond as
// the previous one takes the next millisecond. Retried invocations still get
// fresh tokens and therefore create new grants.
type ClockTokens struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

// Token implements TokenSource.
func (c *ClockTokens) Token(_, _, _ string) string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ms := now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms

	return fmt.Sprintf("token_%d", ms)
}

// tokenNamespace scopes the name-based UUIDs below.
var tokenNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/mpctl/mpctl/grant-token"))

// NameTokens derives a stable token from the operation, license and account,
// so a retried invocation for the same product and account repeats the same
// request instead of creating a duplicate grant.
type NameTokens struct{}

// Token implements TokenSource.
func (NameTokens) Token(op, licenseArn, accountID string) string {
	name := strings.Join([]string{op, licenseArn, accountID}, "|")
	return uuid.NewSHA1(tokenNamespace, []byte(name)).String()
}
