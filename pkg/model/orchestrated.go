package model

// OrchestratedBusiness is the resolved bundle of a root business document plus
// its successfully resolved optional layers. It is constructed fresh on every
// resolution call and never mutated afterwards; a nil layer pointer means the
// layer was unreferenced or its file was missing (never that it was invalid —
// invalid referenced layers abort resolution instead).
type OrchestratedBusiness struct {
	Business           *Business
	NorthStar          *NorthStar
	LeanCanvas         *LeanCanvas
	ArchitecturalScope *ArchitecturalScope
	LeanViability      *LeanViability
	AAARR              *AAARRMetrics
	PolicyCharter      *PolicyCharter
}

// PresentLayers returns the names of the optional layers that resolved,
// in canonical layer order.
func (ob *OrchestratedBusiness) PresentLayers() []string {
	var present []string
	if ob.NorthStar != nil {
		present = append(present, LayerNorthStar)
	}
	if ob.LeanCanvas != nil {
		present = append(present, LayerLeanCanvas)
	}
	if ob.ArchitecturalScope != nil {
		present = append(present, LayerArchitecturalScope)
	}
	if ob.LeanViability != nil {
		present = append(present, LayerLeanViability)
	}
	if ob.AAARR != nil {
		present = append(present, LayerAAARRMetrics)
	}
	if ob.PolicyCharter != nil {
		present = append(present, LayerPolicyCharter)
	}
	return present
}

// RefFields maps each ref field name on the business document to its declared
// value, in canonical layer order. Used by the resolver and the cross-layer
// validator so the two agree on what "declared" means.
type RefField struct {
	Field string // e.g. "north_star_ref"
	Layer string // layer name the ref resolves into
	Path  string // declared path, "" if the field is absent
}

// RefFields lists the six layer refs declared on the business document.
// backlog_ref is accepted by the schema but has no layer in the orchestration
// core, so it is not listed here.
func (b *Business) RefFields() []RefField {
	return []RefField{
		{Field: "north_star_ref", Layer: LayerNorthStar, Path: b.NorthStarRef},
		{Field: "lean_canvas_ref", Layer: LayerLeanCanvas, Path: b.LeanCanvasRef},
		{Field: "architectural_scope_ref", Layer: LayerArchitecturalScope, Path: b.ArchitecturalScopeRef},
		{Field: "lean_viability_ref", Layer: LayerLeanViability, Path: b.LeanViabilityRef},
		{Field: "aaarr_ref", Layer: LayerAAARRMetrics, Path: b.AAARRRef},
		{Field: "policy_charter_ref", Layer: LayerPolicyCharter, Path: b.PolicyCharterRef},
	}
}

// Layer returns the resolved layer document for a layer name, nil if absent
// or unknown. The business root is not addressable through this accessor.
func (ob *OrchestratedBusiness) Layer(name string) any {
	switch name {
	case LayerNorthStar:
		if ob.NorthStar != nil {
			return ob.NorthStar
		}
	case LayerLeanCanvas:
		if ob.LeanCanvas != nil {
			return ob.LeanCanvas
		}
	case LayerArchitecturalScope:
		if ob.ArchitecturalScope != nil {
			return ob.ArchitecturalScope
		}
	case LayerLeanViability:
		if ob.LeanViability != nil {
			return ob.LeanViability
		}
	case LayerAAARRMetrics:
		if ob.AAARR != nil {
			return ob.AAARR
		}
	case LayerPolicyCharter:
		if ob.PolicyCharter != nil {
			return ob.PolicyCharter
		}
	}
	return nil
}
