// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mpctl/mpctl/internal/log"
)

// EnvDelimiter overrides the comma between filter expressions.
const EnvDelimiter = "MPCTL_FILTER_DELIM"

// filterRegex splits an expression into key, optional negated operator and
// target: "name" (key only), "name=value", "name!^prefix".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Value   string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(EnvDelimiter); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		key := strings.TrimSpace(parts[1])
		operand := parts[2]

		if key == "" || operand == "" {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// Apply returns the rows matching every filter in spec. The input slice is not
// modified.
func Apply(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	// Drop filters on keys no row carries so a typo does not empty the result.
	known := filters[:0:0]
	for _, f := range filters {
		if hasKey(rows, f.Key) {
			known = append(known, f)
			continue
		}
		log.Warnf("filter key not found: %s", f.Key)
	}

	var out []map[string]interface{}
	for _, row := range rows {
		if matches(row, known) {
			out = append(out, row)
		}
	}
	return out
}

func hasKey(rows []map[string]interface{}, key string) bool {
	for _, row := range rows {
		if _, ok := row[key]; ok {
			return true
		}
	}
	return false
}

// matches reports whether row satisfies all filters.
func matches(row map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		value, ok := row[f.Key]
		if !ok || value == nil {
			return false
		}

		var result bool
		switch v := value.(type) {
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), f)
		case string:
			result = checkStringOperand(v, f)
		default:
			if num, ok := toFloat64(v); ok {
				result = checkNumericOperand(num, f)
			} else {
				result = checkStringOperand(fmt.Sprintf("%v", v), f)
			}
		}

		if !result {
			return false
		}
	}
	return true
}

// checkNumericOperand compares a numeric value against the filter value.
// Operands other than =, < and > fall back to string comparison.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string filter against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 normalizes the numeric types rows carry.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
