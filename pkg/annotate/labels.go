package annotate

import (
	"github.com/ontoloom/ontoloom/pkg/common"
)

// DefaultLabels maps the label vocabularies of the supported NER backends
// to the canonical entity types. Unlisted labels pass through unchanged.
func DefaultLabels() map[string]common.EntityType {
	return map[string]common.EntityType{
		"PER":    common.EntityTypePerson,
		"PERSON": common.EntityTypePerson,
		"LOC":    common.EntityTypePlace,
		"GPE":    common.EntityTypePlace,
		"ORG":    common.EntityTypeOrganization,
		"DATE":   common.EntityTypeDate,
		"EVENT":  common.EntityTypeEvent,
		"MISC":   common.EntityTypeMisc,
	}
}
