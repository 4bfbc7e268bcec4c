package models

import (
	"sort"
	"strings"
)

// TagMap maps a tag name to the values attached to a trade, e.g.
// {"setup": ["breakout"], "emotion": ["calm", "impatient"]}. Values
// within a tag are a set semantically, but duplicates from input are
// preserved as supplied.
type TagMap map[string][]string

// NormalizeTags builds a TagMap from free-form input, trimming and
// casefolding tag names and trimming values. Normalization happens once
// at ingestion so consumers never have to repeat it. Empty names and
// empty values are dropped.
func NormalizeTags(raw map[string][]string) TagMap {
	if len(raw) == 0 {
		return nil
	}
	out := make(TagMap, len(raw))
	for name, values := range raw {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			out[key] = append(out[key], v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clone returns a deep copy of the map.
func (m TagMap) Clone() TagMap {
	if m == nil {
		return nil
	}
	out := make(TagMap, len(m))
	for name, values := range m {
		out[name] = append([]string(nil), values...)
	}
	return out
}

// Names returns the tag names present in the map in ascending order,
// so listings and exports are deterministic.
func (m TagMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
