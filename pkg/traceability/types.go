// Package traceability builds and queries the directed graph connecting every
// entity extracted from a resolved business specification.
package traceability

// Edge types. Contains and references are structural; the rest are
// author-declared cross-entity relationships.
const (
	EdgeContains     = "contains"
	EdgeReferences   = "references"
	EdgeAddresses    = "addresses"
	EdgeImpacts      = "impacts"
	EdgeDrives       = "drives"
	EdgeRequires     = "requires"
	EdgeMeasures     = "measures"
	EdgeMitigates    = "mitigates"
	EdgeDrivenBy     = "driven_by"
	EdgeJustifiedBy  = "justified_by"
	EdgeImportedFrom = "imported_from"
)

// Edge strengths, by convention: 10 is structural containment or a primary
// reference, lower values are weaker semantic links. Rendering emphasis only;
// no algorithm reads these.
const (
	strengthStructural   = 10
	strengthAddresses    = 8
	strengthImpacts      = 7
	strengthDrives       = 7
	strengthDrivenBy     = 7
	strengthRequires     = 6
	strengthMeasures     = 6
	strengthMitigates    = 6
	strengthJustifiedBy  = 5
	strengthImportedFrom = 4
)

// Node is one discovered entity. IDs are synthesized deterministically from
// layer name and structural position, or taken from the author's semantic ID
// when the entity carries one, so rebuilding from the same documents yields
// the same IDs in the same order.
type Node struct {
	ID          string `json:"id"`
	Layer       string `json:"layer"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Data carries the original sub-document for downstream rendering.
	// Graph algorithms never read it.
	Data any `json:"data,omitempty"`
}

// Edge is one directed relationship. Source and Target are node IDs, but a
// target is not guaranteed to correspond to an emitted node: free-form
// dotted-path strings (imported_from) are recorded as-is and treated as
// leaves by the query utilities.
type Edge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type"`
	Strength int    `json:"strength"`
	Metadata string `json:"metadata,omitempty"`
}

// Graph is the immutable node/edge value produced by Build. It is plain data,
// safe to serialize as JSON and to query concurrently from multiple callers.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
