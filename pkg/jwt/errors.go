package jwt

import "errors"

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// Structural failures.
	ErrStructural      = errors.New("malformed token")
	ErrSegmentCount    = errors.New("wrong number of segments")
	ErrSegmentEncoding = errors.New("invalid base64url segment")
	ErrSegmentJSON     = errors.New("invalid json segment")
	ErrNotObject       = errors.New("segment is not a json object")

	// Generation failures.
	ErrMalformedInput = errors.New("malformed header/payload")
)

// StructuralError reports why a string is not a well-formed compact JWT.
// Message is the human readable text returned to callers verbatim.
type StructuralError struct {
	Kind    error
	Segment int // 1-based, 0 when the failure is not tied to a segment
	Message string
}

func (e *StructuralError) Error() string { return e.Message }

func (e *StructuralError) Unwrap() []error { return []error{ErrStructural, e.Kind} }

// GenerationError reports why a token could not be generated.
type GenerationError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
