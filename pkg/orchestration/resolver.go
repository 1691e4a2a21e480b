// Package orchestration resolves a root business document into the bundle of
// layer documents it references.
package orchestration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dd0wney/biztrace/pkg/logging"
	"github.com/dd0wney/biztrace/pkg/model"
	"github.com/dd0wney/biztrace/pkg/parser"
	"github.com/dd0wney/biztrace/pkg/schema"
)

// Resolver loads a business document and its referenced layers from disk.
// Every Resolve call re-reads everything; there is no caching, so unchanged
// files always produce structurally equal results.
type Resolver struct {
	registry *schema.Registry
	logger   logging.Logger
}

// NewResolver creates a resolver using the given schema registry.
func NewResolver(registry *schema.Registry, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{
		registry: registry,
		logger:   logger.With(logging.Component("resolver")),
	}
}

// Resolve parses and validates the root business document at businessFilePath,
// then resolves each declared *_ref relative to the business file's directory.
//
// A referenced file that does not exist leaves its layer absent; partial
// business specifications are valid inputs. A referenced file that exists but
// fails parsing or schema validation aborts the whole resolution.
func (r *Resolver) Resolve(businessFilePath string) (*model.OrchestratedBusiness, error) {
	business, err := parser.ParseBusiness(businessFilePath, r.registry)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(businessFilePath)
	ob := &model.OrchestratedBusiness{Business: business}

	for _, ref := range business.RefFields() {
		if ref.Path == "" {
			continue
		}

		resolved := resolveRefPath(baseDir, ref.Path)
		if _, statErr := os.Stat(resolved); statErr != nil {
			// Missing referenced files are skipped, not failed: the
			// cross-layer validator reports them, resolution does not.
			r.logger.Debug("referenced layer file missing, skipping",
				logging.Layer(ref.Layer), logging.File(resolved))
			continue
		}

		if err := r.attachLayer(ob, ref.Layer, resolved); err != nil {
			return nil, err
		}
		r.logger.Debug("layer resolved", logging.Layer(ref.Layer), logging.File(resolved))
	}

	r.logger.Info("business resolved",
		logging.File(businessFilePath),
		logging.Count(len(ob.PresentLayers())))
	return ob, nil
}

// resolveRefPath resolves a declared reference against the business file's
// directory. Absolute references are used as-is.
func resolveRefPath(baseDir, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(baseDir, ref)
}

// attachLayer parses, validates and attaches one referenced layer document.
func (r *Resolver) attachLayer(ob *model.OrchestratedBusiness, layer, path string) error {
	var err error
	switch layer {
	case model.LayerNorthStar:
		ob.NorthStar, err = parser.ParseNorthStar(path, r.registry)
	case model.LayerLeanCanvas:
		ob.LeanCanvas, err = parser.ParseLeanCanvas(path, r.registry)
	case model.LayerArchitecturalScope:
		ob.ArchitecturalScope, err = parser.ParseArchitecturalScope(path, r.registry)
	case model.LayerLeanViability:
		ob.LeanViability, err = parser.ParseLeanViability(path, r.registry)
	case model.LayerAAARRMetrics:
		ob.AAARR, err = parser.ParseAAARRMetrics(path, r.registry)
	case model.LayerPolicyCharter:
		ob.PolicyCharter, err = parser.ParsePolicyCharter(path, r.registry)
	default:
		return fmt.Errorf("unknown layer %q referenced from business document", layer)
	}
	return err
}
