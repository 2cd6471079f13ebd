package annotate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ontoloom/ontoloom/pkg/common"
)

const (
	defaultMinLength      = 2
	defaultMinScore       = 0.9
	defaultArtifactWindow = 2
)

// Raw is one detection as reported by a token-classification backend.
type Raw struct {
	Word  string  `json:"word"`
	Group string  `json:"entity_group"`
	Score float64 `json:"score"`
}

// Annotator is a black-box NER backend producing raw detections for a
// text chunk.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Raw, error)
}

// Backend wraps one Annotator with its label vocabulary and filter
// settings.
//
// Labels maps backend-specific groups to canonical types; unmapped groups
// pass through unchanged. Keep restricts output to the listed types (empty
// keeps everything). DatesOnly marks linguistic date parsers: only
// date-typed detections survive and their text goes through the date
// normalization pass. AllowList names literals retained regardless of
// score.
type Backend struct {
	Name           string
	Annotator      Annotator
	Labels         map[string]common.EntityType
	Keep           []common.EntityType
	DatesOnly      bool
	MinScore       float64
	AllowList      []string
	ArtifactWindow int
}

// Adapter fans a text chunk out to every configured backend and merges
// the filtered detections into one flat mention list.
type Adapter struct {
	backends  []Backend
	minLength int
}

// NewAdapterParams configures an Adapter. MinLength defaults to 2
// characters of cleaned mention text.
type NewAdapterParams struct {
	Backends  []Backend
	MinLength int
}

func NewAdapter(params NewAdapterParams) *Adapter {
	minLength := params.MinLength
	if minLength <= 0 {
		minLength = defaultMinLength
	}

	backends := make([]Backend, len(params.Backends))
	copy(backends, params.Backends)
	for i := range backends {
		if backends[i].MinScore <= 0 {
			backends[i].MinScore = defaultMinScore
		}
		if backends[i].ArtifactWindow <= 0 {
			backends[i].ArtifactWindow = defaultArtifactWindow
		}
	}

	return &Adapter{
		backends:  backends,
		minLength: minLength,
	}
}

// Annotate runs every backend over the chunk and returns the concatenated,
// filtered mentions. Per backend: the sub-token artifact filter runs first,
// then the confidence filter, then label mapping, text cleanup, the
// minimum-length check and (for date parsers) date normalization.
func (a *Adapter) Annotate(ctx context.Context, text string) ([]common.Mention, error) {
	var mentions []common.Mention

	for _, backend := range a.backends {
		raw, err := backend.Annotator.Annotate(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", backend.Name, err)
		}

		raw = filterArtifacts(raw, backend.ArtifactWindow)
		raw = filterConfidence(raw, backend.MinScore, backend.AllowList)

		for _, r := range raw {
			entityType := mapLabel(backend.Labels, r.Group)
			if backend.DatesOnly && entityType != common.EntityTypeDate {
				continue
			}
			if !keepType(backend.Keep, entityType) {
				continue
			}

			mentionText := cleanMentionText(r.Word)
			if utf8.RuneCountInString(mentionText) < a.minLength {
				continue
			}
			if backend.DatesOnly {
				mentionText = NormalizeDate(mentionText)
			}

			mentions = append(mentions, common.Mention{
				Text: mentionText,
				Type: entityType,
			})
		}
	}

	return mentions, nil
}

// filterArtifacts drops detections carrying a sub-token continuation
// marker, plus a window of neighbors on both sides. Split-word artifacts
// reliably poison adjacent detections from the same run.
func filterArtifacts(raw []Raw, window int) []Raw {
	drop := make(map[int]struct{})
	for i, r := range raw {
		if !strings.Contains(r.Word, "##") {
			continue
		}
		start := max(0, i-window)
		end := min(len(raw)-1, i+window)
		for j := start; j <= end; j++ {
			drop[j] = struct{}{}
		}
	}

	if len(drop) == 0 {
		return raw
	}

	kept := make([]Raw, 0, len(raw)-len(drop))
	for i, r := range raw {
		if _, ok := drop[i]; ok {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// filterConfidence drops detections below minScore unless the literal word
// is allow-listed.
func filterConfidence(raw []Raw, minScore float64, allowList []string) []Raw {
	kept := raw[:0:0]
	for _, r := range raw {
		if r.Score >= minScore || allowed(allowList, r.Word) {
			kept = append(kept, r)
		}
	}
	return kept
}

func allowed(allowList []string, word string) bool {
	for _, literal := range allowList {
		if word == literal {
			return true
		}
	}
	return false
}

func mapLabel(labels map[string]common.EntityType, group string) common.EntityType {
	if mapped, ok := labels[group]; ok {
		return mapped
	}
	return common.EntityType(group)
}

func keepType(keep []common.EntityType, t common.EntityType) bool {
	if len(keep) == 0 {
		return true
	}
	for _, k := range keep {
		if k == t {
			return true
		}
	}
	return false
}

var reNonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// cleanMentionText replaces non-word characters with spaces and trims the
// result, so punctuation glued to a detection never reaches the resolver.
func cleanMentionText(text string) string {
	return strings.TrimSpace(reNonWord.ReplaceAllString(text, " "))
}
