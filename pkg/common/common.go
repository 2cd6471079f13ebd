package common

// EntityType classifies a detected entity. The canonical set mirrors the
// classes of the generated ontology; annotator-specific labels that have no
// canonical mapping pass through unchanged as ad-hoc types.
type EntityType string

const (
	EntityTypePerson       EntityType = "Person"
	EntityTypePlace        EntityType = "Place"
	EntityTypeOrganization EntityType = "Organization"
	EntityTypeDate         EntityType = "Date"
	EntityTypeEvent        EntityType = "Event"
	EntityTypeMisc         EntityType = "Misc"
)

// CanonicalTypes lists the entity types with a fixed class mapping in the
// ontology vocabulary.
var CanonicalTypes = []EntityType{
	EntityTypePerson,
	EntityTypePlace,
	EntityTypeOrganization,
	EntityTypeDate,
	EntityTypeEvent,
	EntityTypeMisc,
}

// Mention is a single detected occurrence of an entity name with a type
// label, produced by one annotator call. Mentions are not deduplicated;
// the resolver clusters them into canonical entities.
type Mention struct {
	Text string     `json:"text"`
	Type EntityType `json:"type"`
}

// CanonicalEntity is the deduplicated representative of one or more mentions
// judged to refer to the same real-world entity.
//
// Name is the shortest mention text of the underlying cluster and Count the
// number of mentions merged into it.
type CanonicalEntity struct {
	Name  string     `json:"name"`
	Type  EntityType `json:"type"`
	Count int        `json:"count"`
}

// Edge is an undirected relationship between two canonical entities, stored
// with Source < Target (lexicographic) so that the triple itself is the
// deduplication key.
type Edge struct {
	Source    string `json:"source"`
	Predicate string `json:"predicate"`
	Target    string `json:"target"`
}
