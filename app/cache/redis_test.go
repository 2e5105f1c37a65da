package cache

import (
	"strings"
	"testing"
)

func TestPlanKey_Deterministic(t *testing.T) {
	a := PlanKey("Goa", "Lisbon", "2026-10-01")
	b := PlanKey("Goa", "Lisbon", "2026-10-01")
	if a != b {
		t.Errorf("Same journey produced different keys: %s vs %s", a, b)
	}
}

func TestPlanKey_NormalizesCaseAndSpace(t *testing.T) {
	a := PlanKey("Goa", "Lisbon", "")
	b := PlanKey("  goa ", "LISBON", "")
	if a != b {
		t.Errorf("Normalized journeys should share a key: %s vs %s", a, b)
	}
}

func TestPlanKey_DistinctJourneys(t *testing.T) {
	keys := map[string]string{
		"origin":      PlanKey("Goa", "Lisbon", ""),
		"destination": PlanKey("Goa", "Porto", ""),
		"date":        PlanKey("Goa", "Lisbon", "2026-10-01"),
		"reversed":    PlanKey("Lisbon", "Goa", ""),
	}
	seen := make(map[string]string)
	for label, key := range keys {
		if prev, ok := seen[key]; ok {
			t.Errorf("Journeys %s and %s collided on key %s", prev, label, key)
		}
		seen[key] = label
	}
}

func TestPlanKey_Prefix(t *testing.T) {
	if key := PlanKey("Goa", "Lisbon", ""); !strings.HasPrefix(key, "plan:") {
		t.Errorf("Expected plan: prefix, got %s", key)
	}
}
