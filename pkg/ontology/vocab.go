package ontology

import (
	"strings"

	"github.com/ontoloom/ontoloom/pkg/textclean"
)

// Namespace IRIs behind the four prefix declarations every serialized
// document carries.
const (
	NamespaceEX   = "http://ontoloom.org/"
	NamespaceFOAF = "http://xmlns.com/foaf/0.1/"
	NamespaceOWL  = "http://www.w3.org/2002/07/owl#"
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"
)

// Relationship verbs. PredicateCoOccurs is the generic default; the
// others are selected by type-pair rules.
const (
	PredicateCoOccurs = "co_occurs_with"
	PredicateWorksAt  = "works_at"
	PredicateOccursIn = "occurs_in"
	PredicateKnows    = "knows"
)

const foafPerson = "foaf:Person"

// typeKeys folds canonical type labels, raw annotator tags and Spanish
// synonyms to one normalized key per class.
var typeKeys = map[string]string{
	"person":       "person",
	"personaje":    "person",
	"per":          "person",
	"place":        "place",
	"lugar":        "place",
	"loc":          "place",
	"gpe":          "place",
	"organization": "organization",
	"organizacion": "organization",
	"organización": "organization",
	"org":          "organization",
	"date":         "date",
	"fecha":        "date",
	"event":        "event",
	"evento":       "event",
	"misc":         "misc",
	"miscelaneo":   "misc",
	"misceláneo":   "misc",
}

// classes maps normalized type keys to class terms. Persons use the FOAF
// vocabulary; everything else lives in the project namespace.
var classes = map[string]string{
	"person":       foafPerson,
	"place":        "ex:place",
	"organization": "ex:organization",
	"date":         "ex:date",
	"event":        "ex:event",
	"misc":         "ex:misc",
}

// pairVerbs selects a domain verb for an unordered pair of type keys.
var pairVerbs = map[[2]string]string{
	{"person", "organization"}: PredicateWorksAt,
	{"event", "place"}:         PredicateOccursIn,
	{"person", "person"}:       PredicateKnows,
}

// typeKey normalizes a type label to its lookup key. Unknown labels pass
// through lowercased.
func typeKey(label string) string {
	lowered := strings.ToLower(label)
	if key, ok := typeKeys[lowered]; ok {
		return key
	}
	return lowered
}

// classTerm returns the class for a normalized type key, deriving a
// project-namespace term for unknown types.
func classTerm(key string) string {
	if class, ok := classes[key]; ok {
		return class
	}
	return "ex:" + textclean.URISafe(key)
}

// verbForPair returns the domain verb for two type keys, trying both
// orders, or the generic co-occurrence predicate when no rule matches.
func verbForPair(a, b string) string {
	if verb, ok := pairVerbs[[2]string{a, b}]; ok {
		return verb
	}
	if verb, ok := pairVerbs[[2]string{b, a}]; ok {
		return verb
	}
	return PredicateCoOccurs
}
