package app

import (
	"regexp"
	"strings"
)

// span attributes should stay readable; long INSERT bodies get cut
const maxTracedQueryLength = 512

var queryWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := queryWhitespace.ReplaceAllString(query, " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}

	return flat
}
