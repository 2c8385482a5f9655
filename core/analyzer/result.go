package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/jwtinspect/pkg/claims"
	"github.com/dmitrymomot/jwtinspect/pkg/derivation"
	"github.com/dmitrymomot/jwtinspect/pkg/jsonvalue"
	"github.com/dmitrymomot/jwtinspect/pkg/jwt"
)

// SignatureStatus is the tri-state outcome of signature verification.
type SignatureStatus uint8

const (
	// SignatureUnset means no secret was supplied and nothing was verified.
	SignatureUnset SignatureStatus = iota
	SignatureValid
	SignatureInvalid
)

func (s SignatureStatus) String() string {
	switch s {
	case SignatureValid:
		return "valid"
	case SignatureInvalid:
		return "invalid"
	}
	return "unset"
}

// MarshalJSON encodes true, false or the string "unset".
func (s SignatureStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case SignatureValid:
		return []byte("true"), nil
	case SignatureInvalid:
		return []byte("false"), nil
	}
	return []byte(`"unset"`), nil
}

// UnmarshalJSON accepts the forms produced by MarshalJSON.
func (s *SignatureStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*s = SignatureValid
	case "false":
		*s = SignatureInvalid
	case `"unset"`, "null":
		*s = SignatureUnset
	default:
		return fmt.Errorf("analyzer: invalid signature status %s", data)
	}
	return nil
}

// State is a node of the analysis state machine.
type State uint8

const (
	StateStart State = iota
	StateParsed
	StateStructuralFailure
	StateValidated
	StateSignatureChecked
	StateSignatureSkipped
)

var stateNames = [...]string{
	StateStart:             "start",
	StateParsed:            "parsed",
	StateStructuralFailure: "structural_failure",
	StateValidated:         "validated",
	StateSignatureChecked:  "signature_checked",
	StateSignatureSkipped:  "signature_skipped",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateStructuralFailure || s == StateSignatureChecked || s == StateSignatureSkipped
}

// Result aggregates everything learned about one token.
type Result struct {
	State State

	// StructuralError is set only in StateStructuralFailure.
	StructuralError *jwt.StructuralError

	Header  *jsonvalue.Value
	Payload *jsonvalue.Value
	Tree    derivation.Node
	Issues  []claims.Issue
	Symbols []claims.Symbol

	// SignatureAlgorithm is the header alg used for verification, if any.
	SignatureAlgorithm string
	Signature          SignatureStatus
}

// StructurallyValid reports whether the token matched the grammar.
func (r Result) StructurallyValid() bool {
	return r.StructuralError == nil && r.State != StateStart
}

// Errors returns error messages in order. A structural failure yields only
// its own message.
func (r Result) Errors() []string {
	if r.StructuralError != nil {
		return []string{r.StructuralError.Message}
	}
	return claims.Messages(r.Issues, claims.Error)
}

// Warnings returns warning messages in order, never nil.
func (r Result) Warnings() []string {
	return claims.Messages(r.Issues, claims.Warning)
}

// DerivationText renders the tree, "" when there is none.
func (r Result) DerivationText() string {
	if r.Tree == nil {
		return ""
	}
	return derivation.Render(r.Tree)
}

type wireResult struct {
	StructurallyValid bool             `json:"estructura_valida"`
	Header            *jsonvalue.Value `json:"header"`
	Payload           *jsonvalue.Value `json:"payload"`
	Derivation        string           `json:"arbol_derivacion"`
	Errors            []string         `json:"errores"`
	Warnings          []string         `json:"warnings"`
	Signature         SignatureStatus  `json:"firma_valida"`
	Symbols           []claims.Symbol  `json:"tabla_simbolos"`
}

// MarshalJSON produces the public wire form of the result.
func (r Result) MarshalJSON() ([]byte, error) {
	symbols := r.Symbols
	if symbols == nil {
		symbols = []claims.Symbol{}
	}
	return json.Marshal(wireResult{
		StructurallyValid: r.StructurallyValid(),
		Header:            r.Header,
		Payload:           r.Payload,
		Derivation:        r.DerivationText(),
		Errors:            r.Errors(),
		Warnings:          r.Warnings(),
		Signature:         r.Signature,
		Symbols:           symbols,
	})
}
