package relate

import (
	"strings"

	"github.com/ontoloom/ontoloom/pkg/common"
	"github.com/ontoloom/ontoloom/pkg/resolve"
	"github.com/ontoloom/ontoloom/pkg/textclean"
)

// DefaultThreshold is the minimum partial-match score for an entity to
// count as present in a paragraph.
const DefaultThreshold = 44

// Predicate is the generic co-occurrence relation emitted for every edge.
const Predicate = "co_occurs_with"

// Extract infers undirected co-occurrence edges between canonical
// entities sharing a paragraph. Text splits into paragraphs on blank
// lines; an entity is present in a paragraph when the partial-match score
// of its URI-normalized, lowercased name against the lowercased paragraph
// reaches the threshold. Every unordered pair of co-present entities
// yields one edge with Source < Target; identical pairs across paragraphs
// collapse to a single edge and self-loops are excluded.
func Extract(text string, entities []common.CanonicalEntity, threshold int) []common.Edge {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	searchTexts := make([]string, len(entities))
	for i, entity := range entities {
		normalized := textclean.URISafe(entity.Name)
		searchTexts[i] = strings.ToLower(strings.ReplaceAll(normalized, "_", " "))
	}

	seen := make(map[common.Edge]struct{})
	var edges []common.Edge

	for _, paragraph := range splitParagraphs(text) {
		lowered := strings.ToLower(paragraph)

		var present []string
		for i, entity := range entities {
			if resolve.PartialRatio(searchTexts[i], lowered) >= threshold {
				present = append(present, entity.Name)
			}
		}

		for i := 0; i < len(present); i++ {
			for j := i + 1; j < len(present); j++ {
				source, target := present[i], present[j]
				if source == target {
					continue
				}
				if source > target {
					source, target = target, source
				}

				edge := common.Edge{
					Source:    source,
					Predicate: Predicate,
					Target:    target,
				}
				if _, ok := seen[edge]; ok {
					continue
				}
				seen[edge] = struct{}{}
				edges = append(edges, edge)
			}
		}
	}

	return edges
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
