package bridge

import "math"

// Args is the loosely typed argument object of one call, as decoded from
// JSON. Getters return nil when a key is absent or holds the wrong type, so
// a mistyped argument reads the same as a missing one.
type Args map[string]any

// Int returns an integral number argument.
func (a Args) Int(key string) *int64 {
	switch v := a[key].(type) {
	case int:
		n := int64(v)
		return &n
	case int64:
		return &v
	case int32:
		n := int64(v)
		return &n
	case float64:
		if math.Trunc(v) != v || math.Abs(v) > 1<<53 {
			return nil
		}
		n := int64(v)
		return &n
	}
	return nil
}

// Float returns a number argument.
func (a Args) Float(key string) *float64 {
	switch v := a[key].(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}

// String returns a string argument.
func (a Args) String(key string) *string {
	if v, ok := a[key].(string); ok {
		return &v
	}
	return nil
}

// Bool returns a boolean argument.
func (a Args) Bool(key string) *bool {
	if v, ok := a[key].(bool); ok {
		return &v
	}
	return nil
}
