package textclean

import (
	"regexp"
	"sort"
	"strings"
)

// Normalizer rewrites known aliases of an entity to a single canonical
// form before extraction runs. An empty replacement removes the alias
// from the text entirely. Matching is case-insensitive on word boundaries.
type Normalizer struct {
	pattern *regexp.Regexp
	aliases map[string]string
}

// NewNormalizer builds a Normalizer from an alias table mapping surface
// forms to canonical names. A nil or empty table yields a no-op Normalizer.
func NewNormalizer(aliases map[string]string) *Normalizer {
	if len(aliases) == 0 {
		return &Normalizer{}
	}

	lowered := make(map[string]string, len(aliases))
	keys := make([]string, 0, len(aliases))
	for alias, canonical := range aliases {
		lowered[strings.ToLower(alias)] = canonical
		keys = append(keys, regexp.QuoteMeta(alias))
	}

	// Longest alternatives first so an alias that prefixes another
	// cannot shadow it.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pattern := regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`)
	return &Normalizer{
		pattern: pattern,
		aliases: lowered,
	}
}

// Apply rewrites every alias occurrence in text to its canonical form.
func (n *Normalizer) Apply(text string) string {
	if n.pattern == nil {
		return text
	}

	return n.pattern.ReplaceAllStringFunc(text, func(match string) string {
		if canonical, ok := n.aliases[strings.ToLower(match)]; ok {
			return canonical
		}
		return match
	})
}
