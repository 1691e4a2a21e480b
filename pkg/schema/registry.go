package schema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/biztrace/pkg/model"
)

// Registry validates layer documents against their per-layer rules. It is an
// explicitly constructed value, injected into the resolver, so tests can run
// against a fresh instance instead of process-wide state.
type Registry struct {
	validate *validator.Validate
}

// NewRegistry creates a registry with all layer rules installed.
func NewRegistry() *Registry {
	return &Registry{
		validate: validator.New(),
	}
}

// Validate checks a parsed document against the named layer's rules.
// It returns a *SchemaValidationError on failure and an ordinary error when
// the layer name itself is unknown.
func (r *Registry) Validate(doc any, layer string) error {
	switch layer {
	case model.LayerBusiness:
		b, ok := doc.(*model.Business)
		if !ok {
			return newTypeMismatch(layer, doc)
		}
		return r.validateBusiness(b)
	case model.LayerNorthStar:
		if _, ok := doc.(*model.NorthStar); !ok {
			return newTypeMismatch(layer, doc)
		}
	case model.LayerLeanCanvas:
		if _, ok := doc.(*model.LeanCanvas); !ok {
			return newTypeMismatch(layer, doc)
		}
	case model.LayerArchitecturalScope:
		if _, ok := doc.(*model.ArchitecturalScope); !ok {
			return newTypeMismatch(layer, doc)
		}
	case model.LayerLeanViability:
		if _, ok := doc.(*model.LeanViability); !ok {
			return newTypeMismatch(layer, doc)
		}
	case model.LayerAAARRMetrics:
		if _, ok := doc.(*model.AAARRMetrics); !ok {
			return newTypeMismatch(layer, doc)
		}
	case model.LayerPolicyCharter:
		if _, ok := doc.(*model.PolicyCharter); !ok {
			return newTypeMismatch(layer, doc)
		}
	default:
		return fmt.Errorf("unknown layer %q: no schema registered", layer)
	}

	if err := r.validate.Struct(doc); err != nil {
		return wrapValidatorError(layer, err)
	}
	return nil
}

// validateBusiness applies the struct tags plus the version gating rule:
// a version 1.0 document may only reference the three original layers.
func (r *Registry) validateBusiness(b *model.Business) error {
	if err := r.validate.Struct(b); err != nil {
		return wrapValidatorError(model.LayerBusiness, err)
	}

	if b.Version == "1.0" {
		var problems []string
		if b.LeanViabilityRef != "" {
			problems = append(problems, "lean_viability_ref requires version 2.0")
		}
		if b.AAARRRef != "" {
			problems = append(problems, "aaarr_ref requires version 2.0")
		}
		if b.PolicyCharterRef != "" {
			problems = append(problems, "policy_charter_ref requires version 2.0")
		}
		if b.BacklogRef != "" {
			problems = append(problems, "backlog_ref requires version 2.0")
		}
		if len(problems) > 0 {
			return &SchemaValidationError{Layer: model.LayerBusiness, Problems: problems}
		}
	}
	return nil
}

func newTypeMismatch(layer string, doc any) *SchemaValidationError {
	return &SchemaValidationError{
		Layer:    layer,
		Problems: []string{fmt.Sprintf("document is %T, not a %s document", doc, layer)},
	}
}

// wrapValidatorError converts validator/v10 errors into a SchemaValidationError
// with one user-friendly problem line per failed field.
func wrapValidatorError(layer string, err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	problems := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s: field is required", field))
		case "eq":
			problems = append(problems, fmt.Sprintf("%s: must equal %q", field, e.Param()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s: must be one of [%s]", field, strings.ReplaceAll(e.Param(), " ", ", ")))
		default:
			problems = append(problems, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}

	return &SchemaValidationError{Layer: layer, Problems: problems}
}
