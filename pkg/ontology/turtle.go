package ontology

import (
	"fmt"
	"strings"
)

// triple is one RDF statement. Terms are prefixed names; a literal object
// is marked so serialization quotes it.
type triple struct {
	subject   string
	predicate string
	object    string
	literal   bool
}

// prefixHeader declares the four namespaces every document uses.
const prefixHeader = "@prefix ex: <" + NamespaceEX + "> .\n" +
	"@prefix foaf: <" + NamespaceFOAF + "> .\n" +
	"@prefix owl: <" + NamespaceOWL + "> .\n" +
	"@prefix rdfs: <" + NamespaceRDFS + "> .\n"

// serializeTriples writes one statement per line in Turtle syntax, using
// "a" for rdf:type.
func serializeTriples(triples []triple) string {
	var sb strings.Builder
	for _, t := range triples {
		object := t.object
		if t.literal {
			object = quoteLiteral(t.object)
		}
		fmt.Fprintf(&sb, "%s %s %s .\n", t.subject, t.predicate, object)
	}
	return sb.String()
}

func quoteLiteral(value string) string {
	escaped := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	).Replace(value)
	return `"` + escaped + `"`
}
