package content

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Values is an untyped option mapping, as read from YAML documents or
// spreadsheet rows. Keys are snake_case option names.
//
// Scalars may be strings, integers, floats or booleans. Lists may be a
// sequence of scalars or a single comma-separated string.
type Values map[string]any

// String returns the option as text. A missing or nil option is "".
func (v Values) String(key string) (string, error) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return "", nil
	}

	s, ok := scalarString(raw)
	if !ok {
		return "", invalidValue(key, fmt.Sprintf("%v", raw), fmt.Sprintf("%s must be a single value", key))
	}
	return s, nil
}

// List returns the option as a list of strings with blank entries removed.
func (v Values) List(key string) ([]string, error) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return nil, nil
	}

	switch t := raw.(type) {
	case string:
		return splitList(t), nil
	case []string:
		list := make([]string, 0, len(t))
		for _, item := range t {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return list, nil
	case []any:
		list := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := scalarString(item)
			if !ok {
				return nil, invalidValue(key, fmt.Sprintf("%v", item), fmt.Sprintf("%s entries must be single values", key))
			}
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		return list, nil
	default:
		return nil, invalidValue(key, fmt.Sprintf("%v", raw), fmt.Sprintf("%s must be a list", key))
	}
}

// Int returns the option as an integer. A missing option is 0.
func (v Values) Int(key string) (int, error) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return 0, nil
	}

	switch t := raw.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t == float64(int(t)) {
			return int(t), nil
		}
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, nil
		}
	}

	return 0, invalidValue(key, fmt.Sprintf("%v", raw), fmt.Sprintf("%s must be an integer", key))
}

// Bool returns the option as a boolean. A missing option is false.
func (v Values) Bool(key string) (bool, error) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return false, nil
	}

	switch t := raw.(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "no", "n", "f", "0":
			return false, nil
		case "true", "yes", "y", "t", "1":
			return true, nil
		}
	}

	return false, invalidValue(key, fmt.Sprintf("%v", raw), fmt.Sprintf("%s must be a boolean", key))
}

// checkKnown rejects options the function does not recognize.
func (v Values) checkKnown(known []string) error {
	var unknown []string
	for key := range v {
		if !slices.Contains(known, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	return invalidValue(unknown[0], "",
		fmt.Sprintf("unrecognized option(s) %s, expected: %s", strings.Join(unknown, ", "), strings.Join(known, ", ")))
}

func scalarString(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case int, int64, float64, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

func splitList(s string) []string {
	var list []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
