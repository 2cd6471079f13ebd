package ontology

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ontoloom/ontoloom/pkg/common"
	"github.com/ontoloom/ontoloom/pkg/textclean"
)

// Generate builds the RDF document for a canonical entity set and its
// relationship edges, serialized as Turtle. The output always starts with
// the ex, foaf, owl and rdfs prefix declarations.
//
// Classes are declared for every distinct entity type, instances get
// exactly one type triple each (entities whose names normalize to the
// same URI merge into one node, first type wins), and edge predicates are
// chosen by type-pair rules with a generic co-occurrence fallback. A
// person pair landing on the fallback upgrades to foaf:knows.
func Generate(entities []common.CanonicalEntity, edges []common.Edge) (string, error) {
	var triples []triple

	triples = append(triples, classTriples(entities)...)

	edgeTriples, verbs := relationTriples(entities, edges)
	triples = append(triples, propertyTriples(verbs)...)
	triples = append(triples, instanceTriples(entities)...)
	triples = append(triples, edgeTriples...)

	serialized := serializeTriples(triples)
	if !strings.HasPrefix(serialized, "@prefix ex:") {
		serialized = prefixHeader + serialized
	}
	return serialized, nil
}

// classTriples declares one owl:Class per distinct normalized type, in
// first-seen order.
func classTriples(entities []common.CanonicalEntity) []triple {
	seen := make(map[string]struct{})
	var triples []triple

	for _, entity := range entities {
		key := typeKey(string(entity.Type))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		class := classTerm(key)
		triples = append(triples,
			triple{subject: class, predicate: "a", object: "owl:Class"},
			triple{subject: class, predicate: "rdfs:label", object: capitalize(key), literal: true},
		)
	}

	return triples
}

// propertyTriples declares the default co-occurrence predicate plus every
// domain verb the edges actually use.
func propertyTriples(usedVerbs map[string]struct{}) []triple {
	verbs := []string{PredicateCoOccurs}
	for _, verb := range []string{PredicateWorksAt, PredicateOccursIn, PredicateKnows} {
		if _, ok := usedVerbs[verb]; ok {
			verbs = append(verbs, verb)
		}
	}

	var triples []triple
	for _, verb := range verbs {
		term := "ex:" + verb
		triples = append(triples,
			triple{subject: term, predicate: "a", object: "owl:ObjectProperty"},
			triple{subject: term, predicate: "rdfs:label", object: verb, literal: true},
		)
	}
	return triples
}

// instanceTriples emits one typed node with a name literal per entity.
// Persons use the FOAF vocabulary for both.
func instanceTriples(entities []common.CanonicalEntity) []triple {
	seen := make(map[string]struct{})
	var triples []triple

	for _, entity := range entities {
		uri := entityTerm(entity.Name)
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}

		class := classTerm(typeKey(string(entity.Type)))
		nameProperty := "ex:name"
		if class == foafPerson {
			nameProperty = "foaf:name"
		}

		triples = append(triples,
			triple{subject: uri, predicate: "a", object: class},
			triple{subject: uri, predicate: nameProperty, object: entity.Name, literal: true},
		)
	}

	return triples
}

// relationTriples resolves edge endpoints against the entity table by
// URI-normalized name and picks each predicate by type pair. Edges with a
// dangling endpoint or identical endpoints after normalization are
// skipped. The returned set names the domain verbs in use.
func relationTriples(entities []common.CanonicalEntity, edges []common.Edge) ([]triple, map[string]struct{}) {
	typesByURI := make(map[string]string, len(entities))
	for _, entity := range entities {
		uri := textclean.URISafe(entity.Name)
		if _, ok := typesByURI[uri]; !ok {
			typesByURI[uri] = typeKey(string(entity.Type))
		}
	}

	seen := make(map[triple]struct{})
	verbs := make(map[string]struct{})
	var triples []triple

	for _, edge := range edges {
		sourceURI := textclean.URISafe(edge.Source)
		targetURI := textclean.URISafe(edge.Target)
		if sourceURI == targetURI {
			continue
		}

		sourceType, ok := typesByURI[sourceURI]
		if !ok {
			continue
		}
		targetType, ok := typesByURI[targetURI]
		if !ok {
			continue
		}

		verb := verbForPair(sourceType, targetType)
		predicate := "ex:" + verb
		// Person pairs always relate through the FOAF vocabulary, whether
		// the pair rule or the generic fallback selected the verb.
		if sourceType == "person" && targetType == "person" &&
			(verb == PredicateKnows || verb == PredicateCoOccurs) {
			predicate = "foaf:knows"
		} else if verb != PredicateCoOccurs {
			verbs[verb] = struct{}{}
		}

		t := triple{
			subject:   "ex:" + sourceURI,
			predicate: predicate,
			object:    "ex:" + targetURI,
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		triples = append(triples, t)
	}

	return triples, verbs
}

func entityTerm(name string) string {
	return "ex:" + textclean.URISafe(name)
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	r, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(r)) + text[size:]
}
