package traceability

import "github.com/dd0wney/biztrace/pkg/model"

// layerColors is the fixed rendering palette, one color per known layer.
var layerColors = map[string]string{
	model.LayerBusiness:           "#2563eb",
	model.LayerNorthStar:          "#7c3aed",
	model.LayerLeanCanvas:         "#059669",
	model.LayerArchitecturalScope: "#d97706",
	model.LayerLeanViability:      "#0891b2",
	model.LayerAAARRMetrics:       "#db2777",
	model.LayerPolicyCharter:      "#dc2626",
}

// defaultNodeColor is used for layers the palette does not know.
const defaultNodeColor = "#6b7280"

// NodeColor returns the rendering color for a layer name. Unknown layers get
// a neutral gray rather than an error; this is display-only data.
func NodeColor(layer string) string {
	if c, ok := layerColors[layer]; ok {
		return c
	}
	return defaultNodeColor
}
