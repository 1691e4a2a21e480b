// Package parser loads YAML layer documents from disk and validates them
// against the schema registry before handing back typed values.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/biztrace/pkg/model"
	"github.com/dd0wney/biztrace/pkg/schema"
)

// parseInto reads path, strictly decodes it into doc, and validates the
// result as the named layer. Schema failures come back annotated with the
// source file path.
func parseInto(path string, doc any, layer string, reg *schema.Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s document %s: %w", layer, path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return &schema.SchemaValidationError{
			File:     path,
			Layer:    layer,
			Problems: []string{fmt.Sprintf("invalid YAML: %v", err)},
		}
	}

	if err := reg.Validate(doc, layer); err != nil {
		var sve *schema.SchemaValidationError
		if errors.As(err, &sve) {
			return sve.WithFile(path)
		}
		return err
	}
	return nil
}

// ParseBusiness loads and validates a root business document.
func ParseBusiness(path string, reg *schema.Registry) (*model.Business, error) {
	doc := &model.Business{}
	if err := parseInto(path, doc, model.LayerBusiness, reg); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseNorthStar loads and validates a north-star document.
func ParseNorthStar(path string, reg *schema.Registry) (*model.NorthStar, error) {
	doc := &model.NorthStar{}
	if err := parseInto(path, doc, model.LayerNorthStar, reg); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseLeanCanvas loads and validates a lean-canvas document.
func ParseLeanCanvas(path string, reg *schema.Registry) (*model.LeanCanvas, error) {
	doc := &model.LeanCanvas{}
	if err := parseInto(path, doc, model.LayerLeanCanvas, reg); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseArchitecturalScope loads and validates an architectural-scope document.
func ParseArchitecturalScope(path string, reg *schema.Registry) (*model.ArchitecturalScope, error) {
	doc := &model.ArchitecturalScope{}
	if err := parseInto(path, doc, model.LayerArchitecturalScope, reg); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseLeanViability loads and validates a lean-viability document.
func ParseLeanViability(path string, reg *schema.Registry) (*model.LeanViability, error) {
	doc := &model.LeanViability{}
	if err := parseInto(path, doc, model.LayerLeanViability, reg); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseAAARRMetrics loads and validates an aaarr-metrics document.
func ParseAAARRMetrics(path string, reg *schema.Registry) (*model.AAARRMetrics, error) {
	doc := &model.AAARRMetrics{}
	if err := parseInto(path, doc, model.LayerAAARRMetrics, reg); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParsePolicyCharter loads and validates a policy-charter document.
func ParsePolicyCharter(path string, reg *schema.Registry) (*model.PolicyCharter, error) {
	doc := &model.PolicyCharter{}
	if err := parseInto(path, doc, model.LayerPolicyCharter, reg); err != nil {
		return nil, err
	}
	return doc, nil
}
