package items

import (
	"testing"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

func candidateWith(attrs types.Attributes) models.Item {
	return models.Item{Name: "Milk", AdditionalInfo: attrs}
}

func TestMatchByAttributesExactKeys(t *testing.T) {
	candidates := []models.Item{
		candidateWith(types.Attributes{"batch": "A1", "flavor": "plain"}),
		candidateWith(types.Attributes{"batch": "B2", "flavor": "plain"}),
	}

	matched, outcome := MatchByAttributes(candidates, types.Attributes{"batch": "A1"})
	if outcome != MatchOne {
		t.Fatalf("expected MatchOne, got %v", outcome)
	}
	if matched[0].AdditionalInfo["batch"] != "A1" {
		t.Fatalf("wrong candidate matched")
	}
}

func TestMatchByAttributesFilterKeyMissing(t *testing.T) {
	candidates := []models.Item{
		candidateWith(types.Attributes{"batch": "A1"}),
	}

	_, outcome := MatchByAttributes(candidates, types.Attributes{"expiry": "2026-01"})
	if outcome != MatchNone {
		t.Fatalf("expected MatchNone for missing filter key, got %v", outcome)
	}
}

func TestMatchByAttributesValueMismatch(t *testing.T) {
	candidates := []models.Item{
		candidateWith(types.Attributes{"batch": "A1"}),
	}

	_, outcome := MatchByAttributes(candidates, types.Attributes{"batch": "Z9"})
	if outcome != MatchNone {
		t.Fatalf("expected MatchNone for value mismatch, got %v", outcome)
	}
}

func TestMatchByAttributesEmptyFilterMatchesAll(t *testing.T) {
	candidates := []models.Item{
		candidateWith(types.Attributes{"batch": "A1"}),
		candidateWith(types.Attributes{"batch": "B2"}),
	}

	matched, outcome := MatchByAttributes(candidates, nil)
	if outcome != MatchAmbiguous {
		t.Fatalf("expected MatchAmbiguous for empty filter over two candidates, got %v", outcome)
	}
	if len(matched) != 2 {
		t.Fatalf("expected both candidates, got %d", len(matched))
	}
}

func TestMatchByAttributesSupersetAttributesStillMatch(t *testing.T) {
	// item carries more keys than the filter asks about
	candidates := []models.Item{
		candidateWith(types.Attributes{"batch": "A1", "flavor": "plain", "origin": "local"}),
	}

	_, outcome := MatchByAttributes(candidates, types.Attributes{"batch": "A1", "flavor": "plain"})
	if outcome != MatchOne {
		t.Fatalf("expected MatchOne, got %v", outcome)
	}
}

func TestMatchByAttributesNoCandidates(t *testing.T) {
	_, outcome := MatchByAttributes(nil, types.Attributes{"batch": "A1"})
	if outcome != MatchNone {
		t.Fatalf("expected MatchNone, got %v", outcome)
	}
}
