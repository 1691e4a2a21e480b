package validation

import (
	"testing"

	"github.com/dd0wney/biztrace/pkg/model"
)

func minimalBusiness() *model.OrchestratedBusiness {
	return &model.OrchestratedBusiness{
		Business: &model.Business{Type: "business", Title: "B", Version: "2.0"},
	}
}

// TestValidate_CleanBusiness verifies a ref-less business produces no issues.
func TestValidate_CleanBusiness(t *testing.T) {
	result := ValidateCrossLayerReferences(minimalBusiness())

	if !result.IsValid {
		t.Error("Expected valid result")
	}
	if len(result.Issues) != 0 {
		t.Errorf("Expected no issues, got %+v", result.Issues)
	}
}

// TestValidate_DanglingReference verifies a declared ref whose layer failed
// to resolve becomes an error issue naming the field.
func TestValidate_DanglingReference(t *testing.T) {
	ob := minimalBusiness()
	ob.Business.NorthStarRef = "missing.yaml"

	result := ValidateCrossLayerReferences(ob)

	if result.IsValid {
		t.Error("Expected invalid result")
	}
	errors := result.Errors()
	if len(errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errors))
	}
	if errors[0].Field != "north_star_ref" {
		t.Errorf("Expected field north_star_ref, got %q", errors[0].Field)
	}
	if errors[0].Layer != model.LayerNorthStar {
		t.Errorf("Expected layer north-star, got %q", errors[0].Layer)
	}
}

// TestValidate_UnreferencedLayerIsFine verifies absent ref fields produce
// nothing at all.
func TestValidate_UnreferencedLayerIsFine(t *testing.T) {
	ob := minimalBusiness()
	ob.Business.LeanCanvasRef = "canvas.yaml"
	ob.LeanCanvas = &model.LeanCanvas{Type: "lean-canvas", Title: "Canvas"}

	result := ValidateCrossLayerReferences(ob)

	if !result.IsValid {
		t.Errorf("Expected valid result, got issues %+v", result.Issues)
	}
}

// TestValidate_OrphanedScopeGoals verifies each unaddressed architectural
// scope goal produces one warning carrying the goal title, including when no
// policy charter exists to address anything.
func TestValidate_OrphanedScopeGoals(t *testing.T) {
	ob := minimalBusiness()
	ob.ArchitecturalScope = &model.ArchitecturalScope{
		Type: "architectural-scope", Title: "Scope",
		Why: model.ScopeWhy{Goals: []model.ScopeGoal{
			{Title: "To increase X"},
			{Title: "To reduce Y"},
		}},
	}

	result := ValidateCrossLayerReferences(ob)

	warnings := result.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d: %+v", len(warnings), warnings)
	}
	for i, want := range []string{"To increase X", "To reduce Y"} {
		if warnings[i].EntityID != want {
			t.Errorf("Warning %d: expected entity %q, got %q", i, want, warnings[i].EntityID)
		}
		if warnings[i].Layer != model.LayerArchitecturalScope {
			t.Errorf("Warning %d: expected layer architectural-scope, got %q", i, warnings[i].Layer)
		}
	}
	// Warnings never flip validity.
	if !result.IsValid {
		t.Error("Warnings alone must not make the result invalid")
	}
}

// TestValidate_AddressedGoalsProduceNoWarnings verifies goals covered by a
// charter addresses array are not reported.
func TestValidate_AddressedGoalsProduceNoWarnings(t *testing.T) {
	ob := minimalBusiness()
	ob.ArchitecturalScope = &model.ArchitecturalScope{
		Type: "architectural-scope", Title: "Scope",
		Why: model.ScopeWhy{Goals: []model.ScopeGoal{
			{Title: "To increase X"},
			{Title: "To reduce Y"},
		}},
	}
	ob.PolicyCharter = &model.PolicyCharter{
		Type: "policy-charter", Title: "Charter",
		Goals: []model.CharterGoal{
			{Title: "G1", Addresses: []string{"To increase X"}},
		},
	}

	result := ValidateCrossLayerReferences(ob)

	warnings := result.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning for the uncovered goal, got %d", len(warnings))
	}
	if warnings[0].EntityID != "To reduce Y" {
		t.Errorf("Expected entity 'To reduce Y', got %q", warnings[0].EntityID)
	}
}

// TestValidate_NoCycleFalsePositives verifies the layer cycle safety net is
// silent on the fixed business-rooted DAG.
func TestValidate_NoCycleFalsePositives(t *testing.T) {
	ob := minimalBusiness()
	ob.Business.NorthStarRef = "ns.yaml"
	ob.Business.PolicyCharterRef = "pc.yaml"
	ob.NorthStar = &model.NorthStar{Type: "north-star", Title: "NS"}
	ob.PolicyCharter = &model.PolicyCharter{Type: "policy-charter", Title: "PC"}

	result := ValidateCrossLayerReferences(ob)

	for _, issue := range result.Issues {
		if issue.Severity == SeverityError {
			t.Errorf("Unexpected error on acyclic business: %+v", issue)
		}
	}
}

// TestValidate_StageGoalWithoutMetrics verifies the shallow AAARR consistency
// check warns, never errors.
func TestValidate_StageGoalWithoutMetrics(t *testing.T) {
	ob := minimalBusiness()
	ob.AAARR = &model.AAARRMetrics{
		Type: "aaarr-metrics", Title: "Funnel",
		Retention: model.AAARRStage{Goal: "Keep customers"},
	}

	result := ValidateCrossLayerReferences(ob)

	warnings := result.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %+v", len(warnings), warnings)
	}
	if warnings[0].EntityID != "retention" {
		t.Errorf("Expected entity 'retention', got %q", warnings[0].EntityID)
	}
	if !result.IsValid {
		t.Error("Consistency heuristics must not invalidate the result")
	}
}

// TestValidate_ImportedFromUnknownTarget verifies dangling viability imports
// are warned about only when the viability layer is present.
func TestValidate_ImportedFromUnknownTarget(t *testing.T) {
	ob := minimalBusiness()
	ob.AAARR = &model.AAARRMetrics{
		Type: "aaarr-metrics", Title: "Funnel",
		Revenue: model.AAARRStage{Metrics: []model.AAARRMetric{
			{Name: "mrr", Target: &model.MetricValue{ImportedFrom: "lean-viability.targets.mrr"}},
		}},
	}

	// Without the viability layer the import is not checkable: no warning.
	if result := ValidateCrossLayerReferences(ob); len(result.Warnings()) != 0 {
		t.Errorf("Expected no warnings without viability layer, got %+v", result.Warnings())
	}

	ob.LeanViability = &model.LeanViability{
		Type: "lean-viability", Title: "Viability",
		Targets: map[string]any{"arr": 1},
	}

	result := ValidateCrossLayerReferences(ob)
	warnings := result.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning for the dangling import, got %d", len(warnings))
	}
	if warnings[0].Field != "target.imported_from" {
		t.Errorf("Expected field target.imported_from, got %q", warnings[0].Field)
	}

	// A matching target silences it.
	ob.LeanViability.Targets["mrr"] = 60000
	if result := ValidateCrossLayerReferences(ob); len(result.Warnings()) != 0 {
		t.Errorf("Expected no warnings with matching target, got %+v", result.Warnings())
	}
}
