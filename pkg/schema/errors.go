package schema

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaValidationError reports a document that failed its layer's schema.
// It is fatal to the call that raised it: the resolver propagates it unchanged
// instead of downgrading the layer to "absent".
type SchemaValidationError struct {
	File     string   // source file path, "" when validating an in-memory document
	Layer    string   // layer name the document was validated as
	Problems []string // one line per violated rule, first line is the primary failure
}

func (e *SchemaValidationError) Error() string {
	where := e.Layer
	if e.File != "" {
		where = fmt.Sprintf("%s (%s)", e.File, e.Layer)
	}
	if len(e.Problems) == 0 {
		return fmt.Sprintf("schema validation failed for %s", where)
	}
	return fmt.Sprintf("schema validation failed for %s: %s", where, strings.Join(e.Problems, "; "))
}

// WithFile returns a copy of the error annotated with the source file path.
func (e *SchemaValidationError) WithFile(path string) *SchemaValidationError {
	return &SchemaValidationError{File: path, Layer: e.Layer, Problems: e.Problems}
}

// IsSchemaValidationError reports whether err (or anything it wraps) is a
// schema validation failure.
func IsSchemaValidationError(err error) bool {
	var sve *SchemaValidationError
	return errors.As(err, &sve)
}
