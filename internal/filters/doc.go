// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a result set with --filter expressions.
//
// A filter is a key-operator-target expression and several are joined with a
// comma, or with MPCTL_FILTER_DELIM when a target itself contains commas.
// Operators, each negated with a leading '!':
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - @ : contains substring
//   - / : regex match
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//
// Examples:
//
//   - "name^weather" : entities whose name starts with "weather"
//   - "visibility!=Public" : entities that are not public
//   - "activated=false" : accounts whose grant did not activate
//
// A row must match every filter. A filter on a key the rows do not carry is
// reported once and ignored.
package filters
