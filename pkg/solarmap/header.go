package solarmap

import (
	"fmt"
	"strconv"
	"strings"
)

// A Header maps metadata keywords to values, as read from an image's
// metadata. Keyword matching ignores case.
type Header map[string]interface{}

func (h Header) get(key string) (interface{}, bool) {
	if v, exists := h[key]; exists {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// Float returns the value for key as a float64. The second return is false
// if the key isn't present; an error means it was present but unusable.
func (h Header) Float(key string) (float64, bool, error) {
	v, exists := h.get(key)
	if !exists {
		return 0, false, nil
	}

	switch val := v.(type) {
	case float64:
		return val, true, nil
	case float32:
		return float64(val), true, nil
	case int:
		return float64(val), true, nil
	case int64:
		return float64(val), true, nil
	case uint64:
		return float64(val), true, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, true, fmt.Errorf("keyword %s: %v", key, err)
		}
		return f, true, nil
	default:
		return 0, true, fmt.Errorf("keyword %s: can't use %T as a number", key, v)
	}
}

// Text returns the value for key as a string, or "" if missing.
func (h Header) Text(key string) string {
	if v, exists := h.get(key); exists {
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return ""
}

// Lookup tries each keyword in kl in turn, returning the first value found
// and the keyword it came from.
func (h Header) Lookup(field string, kl KeyLookup) (float64, string, error) {
	for _, key := range kl.Keys() {
		if f, found, err := h.Float(key); err != nil {
			return 0, key, fmt.Errorf("%s: %v", field, err)
		} else if found {
			return f, key, nil
		}
	}
	return 0, "", &MissingMetadataError{Field: field, Keys: kl.Keys()}
}
