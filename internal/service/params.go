package service

import "fmt"

// UnknownMethodError is returned by Dispatch when the method name is not in
// the recognized set.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method: %s", e.Method)
}

// ParamError reports a missing or invalid parameter, detected before any
// network call is made.
type ParamError struct {
	Name    string
	Context string
}

func (e *ParamError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("missing required parameter: %s %s", e.Name, e.Context)
	}
	return fmt.Sprintf("missing required parameter: %s", e.Name)
}

// intParam reads an integer parameter from the bag, accepting the numeric
// types a JSON decoder may produce. The default is returned when the key is
// absent or not numeric.
func intParam(params map[string]any, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// strParam reads an identifier-like string parameter from the bag. An empty
// string counts as absent; names and actions are never meaningfully empty.
func strParam(params map[string]any, key string) (string, bool) {
	s, ok := optStr(params, key)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// optStr reads a string parameter from the bag, reporting presence even when
// the value is the empty string. Secret values may legitimately be empty.
func optStr(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return s, true
}

// requireStr reads a required string parameter, returning a ParamError that
// names the parameter when it is absent.
func requireStr(params map[string]any, key string) (string, error) {
	s, ok := strParam(params, key)
	if !ok {
		return "", &ParamError{Name: key}
	}
	return s, nil
}
