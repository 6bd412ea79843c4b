package mapping

import (
	"fmt"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// Stages at which a mapping can fail.
const (
	StageDecode = "decode"
	StageShape  = "shape"
	StagePanic  = "panic"
)

// ParseError is returned alongside a fallback view model.
type ParseError struct {
	Domain seo.Domain
	Stage  string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("map %s payload: %s: %v", e.Domain, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
