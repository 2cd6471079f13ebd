package resolve

import (
	"unicode/utf8"

	"github.com/ontoloom/ontoloom/pkg/common"
)

// Config controls clustering behavior.
//
// Threshold is the minimum 0-100 similarity score for a mention to join an
// existing cluster. MinCount drops canonical entities backed by fewer
// mentions; MinCountTypes restricts that filter to the listed types, or to
// every type when empty. BestMatch switches from first-match to
// best-match cluster selection.
type Config struct {
	Threshold     int
	MinCount      int
	MinCountTypes []common.EntityType
	BestMatch     bool
}

type cluster struct {
	seed    common.Mention
	members []common.Mention
}

// Resolve merges near-duplicate mentions into canonical entities using
// single-pass greedy clustering. Each mention is compared against existing
// cluster seeds in creation order and joins the first cluster whose seed
// shares its type and scores at or above the threshold; otherwise it opens
// a new cluster. The result is deterministic but insertion-order sensitive:
// first match wins and mentions are never reassigned.
//
// With Config.BestMatch set, every cluster seed is scanned and the mention
// joins the highest-scoring qualifying cluster, ties going to the earliest.
func Resolve(mentions []common.Mention, cfg Config) []common.CanonicalEntity {
	var clusters []*cluster

	for _, mention := range mentions {
		target := findCluster(clusters, mention, cfg)
		if target == nil {
			clusters = append(clusters, &cluster{
				seed:    mention,
				members: []common.Mention{mention},
			})
			continue
		}
		target.members = append(target.members, mention)
	}

	entities := make([]common.CanonicalEntity, 0, len(clusters))
	for _, c := range clusters {
		entity := common.CanonicalEntity{
			Name:  representative(c.members),
			Type:  c.seed.Type,
			Count: len(c.members),
		}
		if !keepEntity(entity, cfg) {
			continue
		}
		entities = append(entities, entity)
	}

	return entities
}

func findCluster(clusters []*cluster, mention common.Mention, cfg Config) *cluster {
	if !cfg.BestMatch {
		for _, c := range clusters {
			if c.seed.Type != mention.Type {
				continue
			}
			if Ratio(mention.Text, c.seed.Text) >= cfg.Threshold {
				return c
			}
		}
		return nil
	}

	var best *cluster
	bestScore := -1
	for _, c := range clusters {
		if c.seed.Type != mention.Type {
			continue
		}
		score := Ratio(mention.Text, c.seed.Text)
		if score >= cfg.Threshold && score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// representative picks the shortest member text, ties broken by first
// occurrence.
func representative(members []common.Mention) string {
	rep := members[0].Text
	repLen := utf8.RuneCountInString(rep)
	for _, m := range members[1:] {
		if l := utf8.RuneCountInString(m.Text); l < repLen {
			rep = m.Text
			repLen = l
		}
	}
	return rep
}

func keepEntity(entity common.CanonicalEntity, cfg Config) bool {
	if cfg.MinCount <= 1 || entity.Count >= cfg.MinCount {
		return true
	}
	if len(cfg.MinCountTypes) == 0 {
		return false
	}
	for _, t := range cfg.MinCountTypes {
		if entity.Type == t {
			return false
		}
	}
	return true
}
