// Package validation checks referential and semantic consistency across the
// resolved layers of a business. Unlike schema validation, which fails fast,
// this pass accumulates every finding into one structured report.
package validation

import (
	"fmt"
	"strings"

	"github.com/dd0wney/biztrace/pkg/model"
)

// Severity classifies an issue. Only errors flip a report to invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one cross-layer finding.
type Issue struct {
	Severity Severity `json:"type"`
	Layer    string   `json:"layer"`
	Message  string   `json:"message"`
	Field    string   `json:"field,omitempty"`
	EntityID string   `json:"entityId,omitempty"`
}

// Result is the outcome of one validation pass.
type Result struct {
	IsValid bool    `json:"isValid"`
	Issues  []Issue `json:"issues"`
}

// Errors returns only the error-severity issues.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns only the warning-severity issues.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(sev Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// ValidateCrossLayerReferences runs every cross-layer check against a resolved
// business and returns the combined report. Warnings never make the result
// invalid; only error-severity issues do.
func ValidateCrossLayerReferences(ob *model.OrchestratedBusiness) *Result {
	var issues []Issue

	issues = append(issues, checkReferentialIntegrity(ob)...)
	issues = append(issues, checkOrphanedScopeGoals(ob)...)
	issues = append(issues, checkLayerCycles(ob)...)
	issues = append(issues, checkLogicalConsistency(ob)...)

	isValid := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			isValid = false
			break
		}
	}
	return &Result{IsValid: isValid, Issues: issues}
}

// checkReferentialIntegrity reports every declared *_ref whose layer failed
// to resolve. Resolution deliberately skips missing files; this is where that
// gap surfaces. Unreferenced layers produce nothing.
func checkReferentialIntegrity(ob *model.OrchestratedBusiness) []Issue {
	var issues []Issue
	for _, ref := range ob.Business.RefFields() {
		if ref.Path == "" {
			continue
		}
		if ob.Layer(ref.Layer) == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Layer:    ref.Layer,
				Field:    ref.Field,
				Message:  fmt.Sprintf("%s references %q, but the file does not exist or is invalid", ref.Field, ref.Path),
			})
		}
	}
	return issues
}

// checkOrphanedScopeGoals warns about architectural-scope goals no policy
// charter goal addresses. A goal is orphaned when its title appears in no
// addresses array, including when no policy charter exists at all.
func checkOrphanedScopeGoals(ob *model.OrchestratedBusiness) []Issue {
	if ob.ArchitecturalScope == nil || len(ob.ArchitecturalScope.Why.Goals) == 0 {
		return nil
	}

	addressed := make(map[string]bool)
	if ob.PolicyCharter != nil {
		for _, goal := range ob.PolicyCharter.Goals {
			for _, title := range goal.Addresses {
				addressed[title] = true
			}
		}
	}

	var issues []Issue
	for _, goal := range ob.ArchitecturalScope.Why.Goals {
		if addressed[goal.Title] {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Layer:    model.LayerArchitecturalScope,
			EntityID: goal.Title,
			Message:  fmt.Sprintf("architectural-scope goal %q is not addressed by any policy-charter goal", goal.Title),
		})
	}
	return issues
}

// checkLayerCycles scans for reference cycles among layers using three-color
// DFS. Layers currently form a fixed DAG rooted at business, so this is a
// safety net for future layer-to-layer references rather than a hot path;
// it must never flag a well-formed acyclic business.
func checkLayerCycles(ob *model.OrchestratedBusiness) []Issue {
	// Adjacency: business -> each declared layer. Layer documents do not
	// (yet) reference other layers by *_ref.
	adjacency := make(map[string][]string)
	for _, ref := range ob.Business.RefFields() {
		if ref.Path != "" {
			adjacency[model.LayerBusiness] = append(adjacency[model.LayerBusiness], ref.Layer)
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)

	var visit func(layer string) bool
	visit = func(layer string) bool {
		color[layer] = gray
		for _, next := range adjacency[layer] {
			switch color[next] {
			case gray:
				return true // back edge
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[layer] = black
		return false
	}

	var issues []Issue
	for layer := range adjacency {
		if color[layer] == white && visit(layer) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Layer:    layer,
				Message:  fmt.Sprintf("circular reference detected among layers starting at %q", layer),
			})
		}
	}
	return issues
}

// checkLogicalConsistency runs the shallow AAARR / Lean Viability heuristics.
// These are structural presence checks, warnings only: the validator does not
// attempt numeric reconciliation between funnel goals and viability targets.
func checkLogicalConsistency(ob *model.OrchestratedBusiness) []Issue {
	if ob.AAARR == nil {
		return nil
	}

	var issues []Issue
	for _, stageName := range model.AAARRStages {
		stage := ob.AAARR.Stage(stageName)

		if stage.Goal != "" && len(stage.Metrics) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Layer:    model.LayerAAARRMetrics,
				EntityID: stageName,
				Message:  fmt.Sprintf("AAARR stage %q declares a goal but measures no metrics", stageName),
			})
		}

		if ob.LeanViability == nil {
			continue
		}
		for _, metric := range stage.Metrics {
			for _, imported := range []struct{ field, path string }{
				{"target.imported_from", importedFrom(metric.Target)},
				{"current.imported_from", importedFrom(metric.Current)},
			} {
				if imported.path == "" {
					continue
				}
				if !viabilityPathExists(ob.LeanViability, imported.path) {
					issues = append(issues, Issue{
						Severity: SeverityWarning,
						Layer:    model.LayerAAARRMetrics,
						EntityID: metric.Name,
						Field:    imported.field,
						Message:  fmt.Sprintf("metric %q imports %q, which matches no lean-viability calculation or target", metric.Name, imported.path),
					})
				}
			}
		}
	}
	return issues
}

func importedFrom(v *model.MetricValue) string {
	if v == nil {
		return ""
	}
	return v.ImportedFrom
}

// viabilityPathExists checks a dotted import path like
// "lean-viability.targets.mrr" against the viability document's sections.
// Paths pointing outside the lean-viability layer are not checkable here and
// are treated as fine.
func viabilityPathExists(lv *model.LeanViability, path string) bool {
	parts := strings.Split(path, ".")
	if len(parts) < 3 || parts[0] != "lean-viability" {
		return true
	}
	key := strings.Join(parts[2:], ".")
	switch parts[1] {
	case "calculations", "calculation":
		_, ok := lv.Calculations[key]
		return ok
	case "targets", "target":
		_, ok := lv.Targets[key]
		return ok
	default:
		return true
	}
}
