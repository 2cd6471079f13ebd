package common

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ParseEntityType resolves a user-supplied type name to a canonical
// EntityType, case-insensitively. Unknown names return an error that
// includes a close-match suggestion when one exists.
func ParseEntityType(name string) (EntityType, error) {
	trimmed := strings.TrimSpace(name)
	for _, t := range CanonicalTypes {
		if strings.EqualFold(trimmed, string(t)) {
			return t, nil
		}
	}

	if suggestion := suggestEntityType(trimmed); suggestion != "" {
		return "", fmt.Errorf("unknown entity type %q (did you mean %q?)", name, suggestion)
	}
	return "", fmt.Errorf("unknown entity type %q", name)
}

// suggestEntityType looks for a likely typo correction, first by edit
// distance, then by subsequence match.
func suggestEntityType(name string) string {
	lowered := strings.ToLower(name)

	closest := ""
	closestDist := 3
	for _, t := range CanonicalTypes {
		dist := levenshtein.ComputeDistance(lowered, strings.ToLower(string(t)))
		if dist < closestDist {
			closest = string(t)
			closestDist = dist
		}
	}
	if closest != "" {
		return closest
	}

	for _, t := range CanonicalTypes {
		if fuzzy.MatchFold(name, string(t)) {
			return string(t)
		}
	}
	return ""
}
