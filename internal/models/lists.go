package models

import (
	"encoding/json"
	"fmt"
)

// EncodeList serializes a list-valued column. A nil slice is stored as "[]".
func EncodeList[T any](items []T) (string, error) {
	if items == nil {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

// DecodeStringList parses a stored list of strings. On malformed input it
// returns an empty, non-nil list together with the parse error so callers can
// log and carry on.
func DecodeStringList(s string) ([]string, error) {
	out := []string{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}, fmt.Errorf("decode string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// DecodeRawList parses a stored list of arbitrary JSON values with the same
// empty-list fallback as DecodeStringList.
func DecodeRawList(s string) ([]json.RawMessage, error) {
	out := []json.RawMessage{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []json.RawMessage{}, fmt.Errorf("decode list: %w", err)
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}
