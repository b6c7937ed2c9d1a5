package headers

import (
	"fmt"
	"strings"
)

// Parse converts "Key: Value" strings into a map. A later entry for the same
// key, compared case-insensitively, replaces the earlier one.
func Parse(h []string) (map[string]string, error) {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("invalid header %q: want \"Name: value\"", hdr)
		}
		set(m, key, strings.TrimSpace(value))
	}
	return m, nil
}

// Merge returns base overlaid with over. Neither input is modified.
func Merge(base, over map[string]string) map[string]string {
	m := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		set(m, k, v)
	}
	for k, v := range over {
		set(m, k, v)
	}
	return m
}

func set(m map[string]string, key, value string) {
	for k := range m {
		if strings.EqualFold(k, key) {
			delete(m, k)
		}
	}
	m[key] = value
}
