package cache

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// InputHash produces a stable hex key over the given values. Values are
// serialized through a canonical form (map keys sorted, struct fields via
// their JSON encoding), so equal-by-value inputs hash identically regardless
// of field/key ordering. Standards version must be part of the hashed tuple
// so a standards change invalidates prior entries.
func InputHash(values ...any) (string, error) {
	h := xxhash.New()
	for _, v := range values {
		canonical, err := canonicalize(v)
		if err != nil {
			return "", fmt.Errorf("failed to canonicalize cache key input: %w", err)
		}
		if _, err := h.Write(canonical); err != nil {
			return "", err
		}
		// Separator keeps ("ab","c") distinct from ("a","bc")
		if _, err := h.Write([]byte{0}); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// canonicalize renders v as JSON with deterministic key order at every level
func canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return marshalSorted(decoded)
}

func marshalSorted(v any) ([]byte, error) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := marshalSorted(t[k])
			if err != nil {
				return nil, err
			}
			out = append(out, kb...)
			out = append(out, ':')
			out = append(out, vb...)
		}
		return append(out, '}'), nil
	case []any:
		out := []byte{'['}
		for i, el := range t {
			if i > 0 {
				out = append(out, ',')
			}
			eb, err := marshalSorted(el)
			if err != nil {
				return nil, err
			}
			out = append(out, eb...)
		}
		return append(out, ']'), nil
	default:
		return json.Marshal(v)
	}
}
