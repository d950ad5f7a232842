package items

import (
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

// MatchOutcome classifies an attribute-filter match over structural
// candidates.
type MatchOutcome int

const (
	MatchNone MatchOutcome = iota
	MatchOne
	MatchAmbiguous
)

// MatchByAttributes filters structural candidates by attribute equality.
// A filter matches when every supplied key is present on the item with an
// equal value; an empty filter matches everything. More than one surviving
// candidate is reported as ambiguous so callers can decide whether picking
// the first is acceptable.
func MatchByAttributes(candidates []models.Item, filter types.Attributes) ([]models.Item, MatchOutcome) {
	matched := make([]models.Item, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.AdditionalInfo.Contains(filter) {
			matched = append(matched, candidate)
		}
	}

	switch len(matched) {
	case 0:
		return nil, MatchNone
	case 1:
		return matched, MatchOne
	default:
		return matched, MatchAmbiguous
	}
}
