package relate

import (
	"reflect"
	"testing"

	"github.com/ontoloom/ontoloom/pkg/common"
)

func entities() []common.CanonicalEntity {
	return []common.CanonicalEntity{
		{Name: "Jon", Type: common.EntityTypePerson, Count: 2},
		{Name: "Bill", Type: common.EntityTypePerson, Count: 2},
		{Name: "Derry", Type: common.EntityTypePlace, Count: 3},
	}
}

func TestExtract_CoOccurrenceScenario(t *testing.T) {
	text := "Jon went to Derry.\n\n\n\nJon met Bill in Derry."

	got := Extract(text, entities(), 44)

	want := []common.Edge{
		{Source: "Derry", Predicate: Predicate, Target: "Jon"},
		{Source: "Bill", Predicate: Predicate, Target: "Jon"},
		{Source: "Bill", Predicate: Predicate, Target: "Derry"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}
}

func TestExtract_DedupAcrossParagraphs(t *testing.T) {
	text := "Jon saw Bill.\n\nBill answered Jon.\n\nJon and Bill left."

	got := Extract(text, entities()[:2], 44)

	want := []common.Edge{
		{Source: "Bill", Predicate: Predicate, Target: "Jon"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}
}

func TestExtract_NoSelfLoops(t *testing.T) {
	text := "Derry, Derry, always Derry."

	got := Extract(text, entities(), 44)
	for _, edge := range got {
		if edge.Source == edge.Target {
			t.Errorf("self-loop emitted: %+v", edge)
		}
	}
}

func TestExtract_LexicographicOrdering(t *testing.T) {
	text := "Jon met Bill."

	got := Extract(text, entities()[:2], 44)
	for _, edge := range got {
		if edge.Source >= edge.Target {
			t.Errorf("edge not lexicographically ordered: %+v", edge)
		}
	}
}

func TestExtract_AbsentEntityExcluded(t *testing.T) {
	text := "Jon walked alone through empty streets."

	got := Extract(text, entities(), 44)
	if len(got) != 0 {
		t.Errorf("expected no edges when only one entity is present, got %+v", got)
	}
}

func TestExtract_EmptyInputs(t *testing.T) {
	if got := Extract("", entities(), 44); len(got) != 0 {
		t.Errorf("expected no edges for empty text, got %+v", got)
	}
	if got := Extract("Jon met Bill in Derry.", nil, 44); len(got) != 0 {
		t.Errorf("expected no edges for empty entity list, got %+v", got)
	}
}

func TestExtract_AccentedNameMatchesPlainParagraph(t *testing.T) {
	accented := []common.CanonicalEntity{
		{Name: "Peñascal", Type: common.EntityTypePlace, Count: 2},
		{Name: "Jon", Type: common.EntityTypePerson, Count: 2},
	}
	text := "Jon subio al penascal al amanecer."

	got := Extract(text, accented, 44)
	want := []common.Edge{
		{Source: "Jon", Predicate: Predicate, Target: "Peñascal"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}
}
