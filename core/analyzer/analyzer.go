// Package analyzer answers one question about a compact JWT: is it
// well-formed, are its claims sound, and does its signature match a secret.
//
// Analyze runs a small state machine:
//
//	Start -> Parsed | StructuralFailure
//	Parsed -> Validated
//	Validated -> SignatureChecked | SignatureSkipped
//
// StructuralFailure is terminal and skips claim validation and signature
// checking. Every failure is reported inside Result; Analyze never returns an
// error and performs no I/O.
package analyzer

import (
	"errors"

	"github.com/dmitrymomot/jwtinspect/pkg/claims"
	"github.com/dmitrymomot/jwtinspect/pkg/jwt"
)

// Analyzer is stateless apart from its validator and safe for concurrent use.
type Analyzer struct {
	validator *claims.Validator
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithValidator replaces the default claims validator.
func WithValidator(v *claims.Validator) Option {
	return func(a *Analyzer) {
		if v != nil {
			a.validator = v
		}
	}
}

// New creates an Analyzer. Without options it validates claims against the
// wall clock with no leeway.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{validator: claims.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze inspects token. A nil secret means none was supplied and the
// signature is not verified; an empty non-nil secret is verified as is.
func (a *Analyzer) Analyze(token string, secret []byte) Result {
	res := Result{State: StateStart}

	tok, err := jwt.Parse(token)
	if err != nil {
		var se *jwt.StructuralError
		if !errors.As(err, &se) {
			se = &jwt.StructuralError{Kind: jwt.ErrStructural, Message: err.Error()}
		}
		res.State = StateStructuralFailure
		res.StructuralError = se
		return res
	}

	res.State = StateParsed
	res.Header = tok.Header
	res.Payload = tok.Payload
	res.Tree = tok.Tree
	res.Symbols = claims.Symbols(tok.Header, tok.Payload)

	res.Issues = a.validator.Validate(tok.Header, tok.Payload)
	if tok.SignatureErr != nil {
		res.Issues = append(res.Issues, claims.Issue{
			Severity: claims.Error,
			Code:     claims.CodeInvalidSignature,
			Message:  tok.SignatureErr.Error(),
		})
	}
	res.State = StateValidated

	if secret == nil {
		res.State = StateSignatureSkipped
		res.Signature = SignatureUnset
		return res
	}

	res.State = StateSignatureChecked
	res.Signature = SignatureInvalid
	alg, ok := tok.Alg()
	res.SignatureAlgorithm = alg
	if !ok || tok.SignatureErr != nil {
		return res
	}
	// Unsupported algorithms fail verification rather than falling back.
	if valid, err := jwt.Verify(tok.SigningInput, tok.Signature, secret, jwt.Algorithm(alg)); err == nil && valid {
		res.Signature = SignatureValid
	}
	return res
}
