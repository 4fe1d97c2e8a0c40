// =============================================================================
// Intacct Functions - Option Validation
// =============================================================================
//
// Checks shared by every function constructor. Each check returns nil or a
// *FieldError naming the offending option.
//
//   requireString  : value must be present ("" is absent, "0" is present)
//   requireOneOf   : value must belong to a fixed set
//   requireMaxCount: list must not exceed a fixed number of entries
//   requireRange   : integer must lie within [lo, hi]
//
// =============================================================================

package content

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// requireString fails when a required option was not supplied.
func requireString(field, value string) error {
	if value == "" {
		return missingField(field)
	}
	return nil
}

// requireOneOf fails when value is not one of allowed. Matching is exact.
func requireOneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return invalidValue(field, value,
		fmt.Sprintf("%s is not a valid format, expected one of: %s", field, strings.Join(allowed, ", ")))
}

// requireMaxCount fails when values holds more than limit entries.
func requireMaxCount(field string, values []string, limit int) error {
	if len(values) > limit {
		return limitExceeded(field, limit, fmt.Sprintf("%s count cannot exceed %d", field, limit))
	}
	return nil
}

// requireRange fails for values below lo (invalid) or above hi (limit).
func requireRange(field string, value, lo, hi int) error {
	if value < lo {
		return invalidValue(field, strconv.Itoa(value),
			fmt.Sprintf("%s must be at least %d", field, lo))
	}
	if value > hi {
		return limitExceeded(field, hi, fmt.Sprintf("%s cannot exceed %d", field, hi))
	}
	return nil
}

// orDefault returns value, or fallback when value was not supplied.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// joinFields renders a field list, "*" meaning all fields.
func joinFields(fields []string) string {
	if len(fields) == 0 {
		return "*"
	}
	return strings.Join(fields, ",")
}

// joinKeys renders a key list, empty when no keys were given.
func joinKeys(keys []string) string {
	return strings.Join(keys, ",")
}
