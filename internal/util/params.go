// Package util contains small helpers shared by the go-scpi packages.
package util

import "time"

// GetString returns the string value stored under key, reporting whether the
// key was present with a string value.
func GetString(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// GetInt returns the integer value stored under key, accepting any numeric
// type a YAML or JSON decoder may produce.
func GetInt(params map[string]any, key string) (int, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true //nolint:gosec
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	default:
		return 0, false
	}
}

// GetSeconds interprets the value stored under key as a duration expressed in
// seconds, accepting integer and floating point representations.
func GetSeconds(params map[string]any, key string) (time.Duration, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case int:
		return time.Duration(n) * time.Second, true
	case int64:
		return time.Duration(n) * time.Second, true
	case float64:
		return time.Duration(n * float64(time.Second)), true
	case float32:
		return time.Duration(float64(n) * float64(time.Second)), true
	default:
		return 0, false
	}
}
