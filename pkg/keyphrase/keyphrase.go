package keyphrase

import (
	"context"
	"strings"
)

const defaultMinNormScore = 0.7

// Keyphrase is one scored phrase from a keyphrase extraction backend.
// Lower raw scores mean more important phrases (YAKE convention).
type Keyphrase struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Extractor is a black-box keyphrase extraction backend.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Keyphrase, error)
}

// Filter normalizes raw scores to an inverted 0-1 range (1 = most
// important) and keeps phrases scoring at least minNorm. Single-word
// phrases are dropped regardless of score. Pass minNorm <= 0 for the
// default cutoff of 0.7. Order is preserved.
func Filter(phrases []Keyphrase, minNorm float64) []string {
	if len(phrases) == 0 {
		return nil
	}
	if minNorm <= 0 {
		minNorm = defaultMinNormScore
	}

	minScore := phrases[0].Score
	maxScore := phrases[0].Score
	for _, p := range phrases[1:] {
		if p.Score < minScore {
			minScore = p.Score
		}
		if p.Score > maxScore {
			maxScore = p.Score
		}
	}

	var kept []string
	for _, p := range phrases {
		norm := 1.0
		if maxScore != minScore {
			norm = 1 - (p.Score-minScore)/(maxScore-minScore)
		}
		if norm < minNorm {
			continue
		}
		if len(strings.Fields(p.Text)) <= 1 {
			continue
		}
		kept = append(kept, p.Text)
	}

	return kept
}

// DedupeOrdered removes duplicate phrases while preserving first-seen
// order.
func DedupeOrdered(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	var unique []string
	for _, phrase := range phrases {
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		unique = append(unique, phrase)
	}
	return unique
}
