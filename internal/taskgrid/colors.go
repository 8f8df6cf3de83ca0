package taskgrid

import "sort"

// FallbackColor fills cells whose category/assignee has no ColorMap entry.
// Unmapped keys are normalized silently, never surfaced as errors.
const FallbackColor = "#95a5a6"

// ColorMap maps category or assignee names to display colors (#rrggbb).
// It is supplied per request; there is no process-wide palette.
type ColorMap map[string]string

func (m ColorMap) Lookup(key string) string {
	if c, ok := m[key]; ok && c != "" {
		return c
	}
	return FallbackColor
}

// Keys returns the mapped names in deterministic order for legend rendering.
func (m ColorMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
