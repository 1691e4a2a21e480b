package model

// Layer names as they appear in document `type` fields and graph nodes.
const (
	LayerBusiness           = "business"
	LayerNorthStar          = "north-star"
	LayerLeanCanvas         = "lean-canvas"
	LayerArchitecturalScope = "architectural-scope"
	LayerLeanViability      = "lean-viability"
	LayerAAARRMetrics       = "aaarr-metrics"
	LayerPolicyCharter      = "policy-charter"
)

// AllLayers lists every known layer name, root document first.
var AllLayers = []string{
	LayerBusiness,
	LayerNorthStar,
	LayerLeanCanvas,
	LayerArchitecturalScope,
	LayerLeanViability,
	LayerAAARRMetrics,
	LayerPolicyCharter,
}

// AAARRStages is the fixed five-stage customer funnel, in canonical order.
var AAARRStages = []string{"acquisition", "activation", "retention", "referral", "revenue"}

// Business is the root document. Its *_ref fields point at the optional layer
// documents, as paths relative to the business file's own directory.
// Version "1.0" supports only the first three refs; "2.0" adds the rest.
type Business struct {
	Type        string `yaml:"type" validate:"required,eq=business"`
	Title       string `yaml:"title" validate:"required"`
	Version     string `yaml:"version" validate:"required,oneof=1.0 2.0"`
	LastUpdated string `yaml:"last_updated,omitempty"`

	NorthStarRef          string `yaml:"north_star_ref,omitempty"`
	LeanCanvasRef         string `yaml:"lean_canvas_ref,omitempty"`
	ArchitecturalScopeRef string `yaml:"architectural_scope_ref,omitempty"`
	LeanViabilityRef      string `yaml:"lean_viability_ref,omitempty"`
	AAARRRef              string `yaml:"aaarr_ref,omitempty"`
	PolicyCharterRef      string `yaml:"policy_charter_ref,omitempty"`
	BacklogRef            string `yaml:"backlog_ref,omitempty"`
}

// StrategicGoal is one entry of a North Star's strategic_goals list.
type StrategicGoal struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description,omitempty"`
	TargetDate  string `yaml:"target_date,omitempty"`
}

// NorthStar captures the long-horizon direction of the business.
type NorthStar struct {
	Type           string          `yaml:"type" validate:"required,eq=north-star"`
	Title          string          `yaml:"title" validate:"required"`
	Mission        string          `yaml:"mission,omitempty"`
	Vision         string          `yaml:"vision,omitempty"`
	StrategicGoals []StrategicGoal `yaml:"strategic_goals,omitempty" validate:"dive"`
}

// CanvasProblem is the Lean Canvas "problem" box.
type CanvasProblem struct {
	Top3Problems         []string `yaml:"top_3_problems,omitempty"`
	ExistingAlternatives []string `yaml:"existing_alternatives,omitempty"`
}

// CanvasSolution is the Lean Canvas "solution" box.
type CanvasSolution struct {
	Top3Features []string `yaml:"top_3_features,omitempty"`
}

// CanvasChannels is the Lean Canvas "channels" box.
type CanvasChannels struct {
	PathToCustomers []string `yaml:"path_to_customers,omitempty"`
}

// CanvasKeyMetrics is the Lean Canvas "key metrics" box.
type CanvasKeyMetrics struct {
	ActivitiesToMeasure []string `yaml:"activities_to_measure,omitempty"`
}

// CanvasCostStructure holds the up-to-four named cost sub-items.
type CanvasCostStructure struct {
	FixedCosts               string `yaml:"fixed_costs,omitempty"`
	VariableCosts            string `yaml:"variable_costs,omitempty"`
	CustomerAcquisitionCosts string `yaml:"customer_acquisition_costs,omitempty"`
	DistributionCosts        string `yaml:"distribution_costs,omitempty"`
}

// LeanCanvas is the one-page business model document.
type LeanCanvas struct {
	Type             string              `yaml:"type" validate:"required,eq=lean-canvas"`
	Title            string              `yaml:"title" validate:"required"`
	Problem          CanvasProblem       `yaml:"problem,omitempty"`
	Solution         CanvasSolution      `yaml:"solution,omitempty"`
	UVP              string              `yaml:"uvp,omitempty"`
	UnfairAdvantage  string              `yaml:"unfair_advantage,omitempty"`
	CustomerSegments string              `yaml:"customer_segments,omitempty"`
	Channels         CanvasChannels      `yaml:"channels,omitempty"`
	KeyMetrics       CanvasKeyMetrics    `yaml:"key_metrics,omitempty"`
	CostStructure    CanvasCostStructure `yaml:"cost_structure,omitempty"`
	RevenueStreams   string              `yaml:"revenue_streams,omitempty"`
}

// ScopeGoal is one entry of an Architectural Scope's why.goals list.
// Titles are the join key Policy Charter goals use in their addresses arrays.
type ScopeGoal struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description,omitempty"`
}

// ScopeWhy holds the mission statement and the goals it decomposes into.
type ScopeWhy struct {
	Mission string      `yaml:"mission,omitempty"`
	Goals   []ScopeGoal `yaml:"goals,omitempty" validate:"dive"`
}

// ArchitecturalScope bounds the system along the six interrogatives.
type ArchitecturalScope struct {
	Type  string   `yaml:"type" validate:"required,eq=architectural-scope"`
	Title string   `yaml:"title" validate:"required"`
	Why   ScopeWhy `yaml:"why,omitempty"`
	What  []string `yaml:"what,omitempty"`
	How   []string `yaml:"how,omitempty"`
	Where []string `yaml:"where,omitempty"`
	Who   []string `yaml:"who,omitempty"`
	When  []string `yaml:"when,omitempty"`
}

// LeanViability holds the unit-economics model as flat key/value sections.
// Values are left untyped: authors mix numbers ("42000") and expressions ("3:1").
type LeanViability struct {
	Type         string         `yaml:"type" validate:"required,eq=lean-viability"`
	Title        string         `yaml:"title" validate:"required"`
	Calculations map[string]any `yaml:"calculations,omitempty"`
	Targets      map[string]any `yaml:"targets,omitempty"`
}

// MetricValue is a target or current reading of an AAARR metric. ImportedFrom,
// when set, is a dotted cross-layer path (e.g. "lean-viability.targets.mrr").
type MetricValue struct {
	Value        string `yaml:"value,omitempty"`
	ImportedFrom string `yaml:"imported_from,omitempty"`
}

// AAARRMetric is one measured quantity within a funnel stage.
type AAARRMetric struct {
	Name        string       `yaml:"name" validate:"required"`
	Description string       `yaml:"description,omitempty"`
	Target      *MetricValue `yaml:"target,omitempty"`
	Current     *MetricValue `yaml:"current,omitempty"`
}

// AAARRStage is one of the five fixed funnel stages.
type AAARRStage struct {
	Goal    string        `yaml:"goal,omitempty"`
	Metrics []AAARRMetric `yaml:"metrics,omitempty" validate:"dive"`
}

// AAARRMetrics is the customer-funnel metrics document.
type AAARRMetrics struct {
	Type        string     `yaml:"type" validate:"required,eq=aaarr-metrics"`
	Title       string     `yaml:"title" validate:"required"`
	Acquisition AAARRStage `yaml:"acquisition,omitempty"`
	Activation  AAARRStage `yaml:"activation,omitempty"`
	Retention   AAARRStage `yaml:"retention,omitempty"`
	Referral    AAARRStage `yaml:"referral,omitempty"`
	Revenue     AAARRStage `yaml:"revenue,omitempty"`
}

// Stage returns the stage struct for a canonical stage name, nil if unknown.
func (a *AAARRMetrics) Stage(name string) *AAARRStage {
	switch name {
	case "acquisition":
		return &a.Acquisition
	case "activation":
		return &a.Activation
	case "retention":
		return &a.Retention
	case "referral":
		return &a.Referral
	case "revenue":
		return &a.Revenue
	default:
		return nil
	}
}

// CharterGoal is a Policy Charter goal. Addresses entries are Architectural
// Scope goal titles; AAARRImpact entries are stage names; Tactics and KPIs are
// semantic IDs of sibling charter entities.
type CharterGoal struct {
	ID          string   `yaml:"id,omitempty"`
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description,omitempty"`
	Addresses   []string `yaml:"addresses,omitempty"`
	AAARRImpact []string `yaml:"aaarr_impact,omitempty"`
	Tactics     []string `yaml:"tactics,omitempty"`
	KPIs        []string `yaml:"kpis,omitempty"`
}

// CharterTactic is a Policy Charter tactic.
type CharterTactic struct {
	ID            string   `yaml:"id,omitempty"`
	Title         string   `yaml:"title" validate:"required"`
	Description   string   `yaml:"description,omitempty"`
	DrivesPolicies []string `yaml:"drives_policies,omitempty"`
	KPIs          []string `yaml:"kpis,omitempty"`
}

// CharterPolicy is a Policy Charter policy.
type CharterPolicy struct {
	ID            string   `yaml:"id,omitempty"`
	Title         string   `yaml:"title" validate:"required"`
	Description   string   `yaml:"description,omitempty"`
	DrivenByTactic string   `yaml:"driven_by_tactic,omitempty"`
	Justification string   `yaml:"justification,omitempty"`
	Requires      []string `yaml:"requires,omitempty"`
}

// CharterRisk is a Policy Charter risk. Policies lists the semantic IDs of
// policies that mitigate it.
type CharterRisk struct {
	ID          string   `yaml:"id,omitempty"`
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description,omitempty"`
	Policies    []string `yaml:"policies,omitempty"`
}

// CharterKPI is a Policy Charter key performance indicator. Measures lists the
// semantic IDs of the entities it quantifies.
type CharterKPI struct {
	ID          string   `yaml:"id,omitempty"`
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description,omitempty"`
	Measures    []string `yaml:"measures,omitempty"`
}

// PolicyCharter is the governance document tying goals to tactics, policies,
// risks and KPIs through author-declared cross-references.
type PolicyCharter struct {
	Type     string          `yaml:"type" validate:"required,eq=policy-charter"`
	Title    string          `yaml:"title" validate:"required"`
	Goals    []CharterGoal   `yaml:"goals,omitempty" validate:"dive"`
	Tactics  []CharterTactic `yaml:"tactics,omitempty" validate:"dive"`
	Policies []CharterPolicy `yaml:"policies,omitempty" validate:"dive"`
	Risks    []CharterRisk   `yaml:"risks,omitempty" validate:"dive"`
	KPIs     []CharterKPI    `yaml:"kpis,omitempty" validate:"dive"`
}
