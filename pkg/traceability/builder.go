package traceability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dd0wney/biztrace/pkg/model"
)

// builder holds the arena plus the semantic-ID maps accumulated while layers
// are processed. The maps are local to one Build call, never module state:
// Policy Charter runs last and resolves its cross-references against IDs
// assigned while Architectural Scope and AAARR were processed.
type builder struct {
	*arena

	scopeGoalsByTitle map[string]string // architectural-scope goal title -> node ID
	stageNodes        map[string]string // AAARR stage name -> node ID
	charterEntities   map[string]string // charter semantic ID -> node ID
}

// Build walks a resolved business and emits the full traceability graph.
// The output is deterministic: node synthesis follows document array order
// and author-supplied semantic IDs, so rebuilding from unchanged documents
// yields identical nodes and edges.
func Build(ob *model.OrchestratedBusiness) *Graph {
	b := &builder{
		arena:             newArena(),
		scopeGoalsByTitle: make(map[string]string),
		stageNodes:        make(map[string]string),
		charterEntities:   make(map[string]string),
	}

	// The business node is always emitted first, even when no layer resolved.
	b.addNode(Node{
		ID:    model.LayerBusiness,
		Layer: model.LayerBusiness,
		Type:  "business",
		Title: ob.Business.Title,
		Data:  ob.Business,
	})

	if ob.NorthStar != nil {
		b.buildNorthStar(ob.NorthStar)
	}
	if ob.LeanCanvas != nil {
		b.buildLeanCanvas(ob.LeanCanvas)
	}
	if ob.ArchitecturalScope != nil {
		b.buildArchitecturalScope(ob.ArchitecturalScope)
	}
	if ob.LeanViability != nil {
		b.buildLeanViability(ob.LeanViability)
	}
	if ob.AAARR != nil {
		b.buildAAARR(ob.AAARR)
	}
	if ob.PolicyCharter != nil {
		b.buildPolicyCharter(ob.PolicyCharter)
	}

	return b.graph()
}

// addLayerRoot emits the root node for a present layer plus both structural
// edges from the business node: contains for ownership, references for the
// declared *_ref. Both are emitted on purpose so containment queries and
// explicit-reference queries are each answerable directly.
func (b *builder) addLayerRoot(layer, title string, data any) string {
	id := b.addNode(Node{
		ID:    layer,
		Layer: layer,
		Type:  "layer",
		Title: title,
		Data:  data,
	})
	b.addEdge(model.LayerBusiness, id, EdgeContains, strengthStructural, "")
	b.addEdge(model.LayerBusiness, id, EdgeReferences, strengthStructural, layer+"_ref")
	return id
}

// addItems emits one node per string element of a list, contained by parent.
func (b *builder) addItems(layer, parent, idPrefix, nodeType string, items []string) {
	for i, item := range items {
		id := b.addNode(Node{
			ID:    fmt.Sprintf("%s.%d", idPrefix, i),
			Layer: layer,
			Type:  nodeType,
			Title: item,
		})
		b.addEdge(parent, id, EdgeContains, strengthStructural, "")
	}
}

func (b *builder) buildNorthStar(ns *model.NorthStar) {
	root := b.addLayerRoot(model.LayerNorthStar, ns.Title, ns)

	if ns.Mission != "" {
		id := b.addNode(Node{
			ID:    "north-star.mission",
			Layer: model.LayerNorthStar,
			Type:  "mission",
			Title: ns.Mission,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
	}
	if ns.Vision != "" {
		id := b.addNode(Node{
			ID:    "north-star.vision",
			Layer: model.LayerNorthStar,
			Type:  "vision",
			Title: ns.Vision,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
	}

	for i, goal := range ns.StrategicGoals {
		id := b.addNode(Node{
			ID:          fmt.Sprintf("north-star.goal.%d", i),
			Layer:       model.LayerNorthStar,
			Type:        "strategic-goal",
			Title:       goal.Title,
			Description: goal.Description,
			Data:        goal,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
	}
}

// addCanvasBox emits an intermediate group node for one Lean Canvas box.
func (b *builder) addCanvasBox(root, name, title string) string {
	id := b.addNode(Node{
		ID:    "lean-canvas." + name,
		Layer: model.LayerLeanCanvas,
		Type:  "canvas-box",
		Title: title,
	})
	b.addEdge(root, id, EdgeContains, strengthStructural, "")
	return id
}

// addCanvasSingleton emits a named singleton box carrying its text as title.
func (b *builder) addCanvasSingleton(root, name, nodeType, text string) {
	if text == "" {
		return
	}
	id := b.addNode(Node{
		ID:    "lean-canvas." + name,
		Layer: model.LayerLeanCanvas,
		Type:  nodeType,
		Title: text,
	})
	b.addEdge(root, id, EdgeContains, strengthStructural, "")
}

func (b *builder) buildLeanCanvas(lc *model.LeanCanvas) {
	root := b.addLayerRoot(model.LayerLeanCanvas, lc.Title, lc)

	if len(lc.Problem.Top3Problems) > 0 || len(lc.Problem.ExistingAlternatives) > 0 {
		box := b.addCanvasBox(root, "problem", "Problem")
		b.addItems(model.LayerLeanCanvas, box, "lean-canvas.problem", "problem", lc.Problem.Top3Problems)
		b.addItems(model.LayerLeanCanvas, box, "lean-canvas.problem.alternative", "alternative", lc.Problem.ExistingAlternatives)
	}
	if len(lc.Solution.Top3Features) > 0 {
		box := b.addCanvasBox(root, "solution", "Solution")
		b.addItems(model.LayerLeanCanvas, box, "lean-canvas.solution", "feature", lc.Solution.Top3Features)
	}
	if len(lc.Channels.PathToCustomers) > 0 {
		box := b.addCanvasBox(root, "channels", "Channels")
		b.addItems(model.LayerLeanCanvas, box, "lean-canvas.channels", "channel", lc.Channels.PathToCustomers)
	}
	if len(lc.KeyMetrics.ActivitiesToMeasure) > 0 {
		box := b.addCanvasBox(root, "key-metrics", "Key Metrics")
		b.addItems(model.LayerLeanCanvas, box, "lean-canvas.key-metrics", "activity", lc.KeyMetrics.ActivitiesToMeasure)
	}

	b.addCanvasSingleton(root, "uvp", "uvp", lc.UVP)
	b.addCanvasSingleton(root, "unfair-advantage", "unfair-advantage", lc.UnfairAdvantage)
	b.addCanvasSingleton(root, "customer-segments", "customer-segments", lc.CustomerSegments)
	b.addCanvasSingleton(root, "revenue-streams", "revenue-streams", lc.RevenueStreams)

	costItems := []struct{ name, text string }{
		{"fixed-costs", lc.CostStructure.FixedCosts},
		{"variable-costs", lc.CostStructure.VariableCosts},
		{"customer-acquisition-costs", lc.CostStructure.CustomerAcquisitionCosts},
		{"distribution-costs", lc.CostStructure.DistributionCosts},
	}
	hasCosts := false
	for _, item := range costItems {
		if item.text != "" {
			hasCosts = true
		}
	}
	if hasCosts {
		box := b.addCanvasBox(root, "cost-structure", "Cost Structure")
		for _, item := range costItems {
			if item.text == "" {
				continue
			}
			id := b.addNode(Node{
				ID:    "lean-canvas.cost-structure." + item.name,
				Layer: model.LayerLeanCanvas,
				Type:  "cost",
				Title: item.text,
			})
			b.addEdge(box, id, EdgeContains, strengthStructural, "")
		}
	}
}

func (b *builder) buildArchitecturalScope(as *model.ArchitecturalScope) {
	root := b.addLayerRoot(model.LayerArchitecturalScope, as.Title, as)

	// Goals hang off the mission node when a mission is declared, otherwise
	// directly off the layer root.
	goalParent := root
	if as.Why.Mission != "" {
		goalParent = b.addNode(Node{
			ID:    "architectural-scope.mission",
			Layer: model.LayerArchitecturalScope,
			Type:  "mission",
			Title: as.Why.Mission,
		})
		b.addEdge(root, goalParent, EdgeContains, strengthStructural, "")
	}

	for i, goal := range as.Why.Goals {
		id := b.addNode(Node{
			ID:          fmt.Sprintf("architectural-scope.goal.%d", i),
			Layer:       model.LayerArchitecturalScope,
			Type:        "goal",
			Title:       goal.Title,
			Description: goal.Description,
			Data:        goal,
		})
		b.addEdge(goalParent, id, EdgeContains, strengthStructural, "")
		b.scopeGoalsByTitle[goal.Title] = id
	}

	b.addItems(model.LayerArchitecturalScope, root, "architectural-scope.what", "what", as.What)
	b.addItems(model.LayerArchitecturalScope, root, "architectural-scope.how", "how", as.How)
	b.addItems(model.LayerArchitecturalScope, root, "architectural-scope.where", "where", as.Where)
	b.addItems(model.LayerArchitecturalScope, root, "architectural-scope.who", "who", as.Who)
	b.addItems(model.LayerArchitecturalScope, root, "architectural-scope.when", "when", as.When)
}

// buildLeanViability expands calculations.* and targets.* as flat key-indexed
// nodes. Keys are sorted so map iteration order never leaks into the graph.
func (b *builder) buildLeanViability(lv *model.LeanViability) {
	root := b.addLayerRoot(model.LayerLeanViability, lv.Title, lv)

	for _, key := range sortedKeys(lv.Calculations) {
		id := b.addNode(Node{
			ID:          "lean-viability.calculation." + key,
			Layer:       model.LayerLeanViability,
			Type:        "calculation",
			Title:       key,
			Description: fmt.Sprintf("%v", lv.Calculations[key]),
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
	}
	for _, key := range sortedKeys(lv.Targets) {
		id := b.addNode(Node{
			ID:          "lean-viability.target." + key,
			Layer:       model.LayerLeanViability,
			Type:        "target",
			Title:       key,
			Description: fmt.Sprintf("%v", lv.Targets[key]),
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stageNodeID is the deterministic node ID for an AAARR funnel stage. Policy
// Charter impacts target these IDs even when the AAARR layer is absent.
func stageNodeID(stage string) string {
	return "aaarr-metrics.stage." + stage
}

func (b *builder) buildAAARR(am *model.AAARRMetrics) {
	root := b.addLayerRoot(model.LayerAAARRMetrics, am.Title, am)

	for _, stageName := range model.AAARRStages {
		stage := am.Stage(stageName)
		stageID := b.addNode(Node{
			ID:          stageNodeID(stageName),
			Layer:       model.LayerAAARRMetrics,
			Type:        "stage",
			Title:       strings.ToUpper(stageName[:1]) + stageName[1:],
			Description: stage.Goal,
		})
		b.addEdge(root, stageID, EdgeContains, strengthStructural, "")
		b.stageNodes[stageName] = stageID

		for i, metric := range stage.Metrics {
			metricID := b.addNode(Node{
				ID:          fmt.Sprintf("%s.metric.%d", stageID, i),
				Layer:       model.LayerAAARRMetrics,
				Type:        "metric",
				Title:       metric.Name,
				Description: metric.Description,
				Data:        metric,
			})
			b.addEdge(stageID, metricID, EdgeContains, strengthStructural, "")

			// imported_from targets are literal dotted paths; they resolve to
			// no node and the query layer treats them as leaves.
			if metric.Target != nil && metric.Target.ImportedFrom != "" {
				b.addEdge(metricID, metric.Target.ImportedFrom, EdgeImportedFrom, strengthImportedFrom, "target.imported_from")
			}
			if metric.Current != nil && metric.Current.ImportedFrom != "" {
				b.addEdge(metricID, metric.Current.ImportedFrom, EdgeImportedFrom, strengthImportedFrom, "current.imported_from")
			}
		}
	}
}

// charterNodeID prefers the author's semantic ID over positional synthesis.
func charterNodeID(semantic, kind string, index int) string {
	if semantic != "" {
		return semantic
	}
	return fmt.Sprintf("policy-charter.%s.%d", kind, index)
}

// resolveCharterRef maps an author-declared reference to the node ID it was
// assigned, falling back to the raw reference string when nothing matches.
func (b *builder) resolveCharterRef(ref string) string {
	if id, ok := b.charterEntities[ref]; ok {
		return id
	}
	return ref
}

func (b *builder) buildPolicyCharter(pc *model.PolicyCharter) {
	root := b.addLayerRoot(model.LayerPolicyCharter, pc.Title, pc)

	// First pass: emit every charter entity and register its ID, so the
	// cross-reference pass below can resolve forward references (a goal
	// naming a tactic that appears later in the document).
	for i, goal := range pc.Goals {
		id := b.addNode(Node{
			ID:          charterNodeID(goal.ID, "goal", i),
			Layer:       model.LayerPolicyCharter,
			Type:        "goal",
			Title:       goal.Title,
			Description: goal.Description,
			Data:        goal,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
		if goal.ID != "" {
			b.charterEntities[goal.ID] = id
		}
	}
	for i, tactic := range pc.Tactics {
		id := b.addNode(Node{
			ID:          charterNodeID(tactic.ID, "tactic", i),
			Layer:       model.LayerPolicyCharter,
			Type:        "tactic",
			Title:       tactic.Title,
			Description: tactic.Description,
			Data:        tactic,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
		if tactic.ID != "" {
			b.charterEntities[tactic.ID] = id
		}
	}
	for i, policy := range pc.Policies {
		id := b.addNode(Node{
			ID:          charterNodeID(policy.ID, "policy", i),
			Layer:       model.LayerPolicyCharter,
			Type:        "policy",
			Title:       policy.Title,
			Description: policy.Description,
			Data:        policy,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
		if policy.ID != "" {
			b.charterEntities[policy.ID] = id
		}
	}
	for i, risk := range pc.Risks {
		id := b.addNode(Node{
			ID:          charterNodeID(risk.ID, "risk", i),
			Layer:       model.LayerPolicyCharter,
			Type:        "risk",
			Title:       risk.Title,
			Description: risk.Description,
			Data:        risk,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
		if risk.ID != "" {
			b.charterEntities[risk.ID] = id
		}
	}
	for i, kpi := range pc.KPIs {
		id := b.addNode(Node{
			ID:          charterNodeID(kpi.ID, "kpi", i),
			Layer:       model.LayerPolicyCharter,
			Type:        "kpi",
			Title:       kpi.Name,
			Description: kpi.Description,
			Data:        kpi,
		})
		b.addEdge(root, id, EdgeContains, strengthStructural, "")
		if kpi.ID != "" {
			b.charterEntities[kpi.ID] = id
		}
	}

	// Second pass: author-declared cross-references become typed edges.
	for i, goal := range pc.Goals {
		goalID := charterNodeID(goal.ID, "goal", i)

		for _, title := range goal.Addresses {
			target := title
			if id, ok := b.scopeGoalsByTitle[title]; ok {
				target = id
			}
			b.addEdge(goalID, target, EdgeAddresses, strengthAddresses, "addresses")
		}
		for _, stage := range goal.AAARRImpact {
			target := stageNodeID(strings.ToLower(stage))
			if id, ok := b.stageNodes[strings.ToLower(stage)]; ok {
				target = id
			}
			b.addEdge(goalID, target, EdgeImpacts, strengthImpacts, "aaarr_impact")
		}
		for _, ref := range goal.Tactics {
			b.addEdge(goalID, b.resolveCharterRef(ref), EdgeDrives, strengthDrives, "tactics")
		}
		for _, ref := range goal.KPIs {
			b.addEdge(b.resolveCharterRef(ref), goalID, EdgeMeasures, strengthMeasures, "kpis")
		}
	}
	for i, tactic := range pc.Tactics {
		tacticID := charterNodeID(tactic.ID, "tactic", i)

		for _, ref := range tactic.DrivesPolicies {
			b.addEdge(tacticID, b.resolveCharterRef(ref), EdgeDrives, strengthDrives, "drives_policies")
		}
		for _, ref := range tactic.KPIs {
			b.addEdge(b.resolveCharterRef(ref), tacticID, EdgeMeasures, strengthMeasures, "kpis")
		}
	}
	for i, policy := range pc.Policies {
		policyID := charterNodeID(policy.ID, "policy", i)

		if policy.DrivenByTactic != "" {
			b.addEdge(policyID, b.resolveCharterRef(policy.DrivenByTactic), EdgeDrivenBy, strengthDrivenBy, "driven_by_tactic")
		}
		if policy.Justification != "" {
			b.addEdge(policyID, b.resolveCharterRef(policy.Justification), EdgeJustifiedBy, strengthJustifiedBy, "justification")
		}
		for _, ref := range policy.Requires {
			b.addEdge(policyID, b.resolveCharterRef(ref), EdgeRequires, strengthRequires, "requires")
		}
	}
	for i, risk := range pc.Risks {
		riskID := charterNodeID(risk.ID, "risk", i)

		for _, ref := range risk.Policies {
			b.addEdge(b.resolveCharterRef(ref), riskID, EdgeMitigates, strengthMitigates, "policies")
		}
	}
	for i, kpi := range pc.KPIs {
		kpiID := charterNodeID(kpi.ID, "kpi", i)

		for _, ref := range kpi.Measures {
			b.addEdge(kpiID, b.resolveCharterRef(ref), EdgeMeasures, strengthMeasures, "measures")
		}
	}
}
