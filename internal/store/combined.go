package store

import "strings"

// combinedSeparator joins parallel relation ids/labels on a single stored
// edge; the converter writes it, query results split it back apart.
const combinedSeparator = "<;>"

// splitCombined splits a facet value that may hold several `<;>`-joined
// relation ids or labels. An empty value yields a single empty element so
// relation id and label lists stay index-aligned.
func splitCombined(s string) []string {
	if !strings.Contains(s, combinedSeparator) {
		return []string{s}
	}

	return strings.Split(s, combinedSeparator)
}

// intersects reports whether any member of values appears in filter.
func intersects(values, filter []string) bool {
	for _, v := range values {
		for _, f := range filter {
			if v == f {
				return true
			}
		}
	}

	return false
}
