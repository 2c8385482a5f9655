// Package claims validates decoded JWT headers and payloads against the
// registered-claim rules of RFC 7519 and classifies findings as errors or
// warnings. It never mutates its input and reads time only through the
// injected clock.
package claims

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/jwtinspect/pkg/jsonvalue"
	"github.com/dmitrymomot/jwtinspect/pkg/jwt"
)

const algNone = "none"

// Validator checks header and payload claims. The zero value is not usable;
// create one with New. A Validator is safe for concurrent use.
type Validator struct {
	now       func() time.Time
	leeway    time.Duration
	allowNone bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLeeway tolerates clock skew on exp, nbf and iat.
func WithLeeway(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.leeway = d
		}
	}
}

// WithAllowNone downgrades alg "none" to a warning only.
func WithAllowNone(allow bool) Option {
	return func(v *Validator) {
		v.allowNone = allow
	}
}

// New returns a Validator with the given options applied.
func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns the findings for header and payload in a stable order:
// header rules first, then payload types, then time claims, then repeated
// keys. Absent optional claims raise nothing.
func (v *Validator) Validate(header, payload *jsonvalue.Value) []Issue {
	var issues []Issue
	issues = append(issues, v.checkAlg(header)...)
	issues = append(issues, checkTyp(header)...)
	issues = append(issues, checkRegisteredTypes(payload)...)
	issues = append(issues, v.checkTimes(payload)...)
	issues = append(issues, duplicateKeys("header", header)...)
	issues = append(issues, duplicateKeys("payload", payload)...)
	return issues
}

func (v *Validator) checkAlg(header *jsonvalue.Value) []Issue {
	alg, ok := header.Get("alg")
	if !ok {
		return []Issue{{Severity: Error, Code: CodeMissingAlg, Message: "missing alg", Claim: "alg"}}
	}
	if alg.Kind() != jsonvalue.String {
		return []Issue{{Severity: Error, Code: CodeUnsupportedAlg, Message: "unsupported alg", Claim: "alg"}}
	}

	name := alg.Str()
	if jwt.Algorithm(name).Supported() {
		return nil
	}

	var issues []Issue
	if name != algNone || !v.allowNone {
		issues = append(issues, Issue{Severity: Error, Code: CodeUnsupportedAlg, Message: "unsupported alg", Claim: "alg"})
	}
	if name == algNone {
		issues = append(issues, Issue{Severity: Warning, Code: CodeInsecureAlgNone, Message: "insecure: alg=none", Claim: "alg"})
	}
	return issues
}

func checkTyp(header *jsonvalue.Value) []Issue {
	typ, ok := header.Get("typ")
	if !ok {
		return nil
	}
	if typ.Kind() != jsonvalue.String {
		return []Issue{typeError("typ", "a string")}
	}
	if !strings.EqualFold(typ.Str(), "JWT") {
		return []Issue{{
			Severity: Warning,
			Code:     CodeUnexpectedTyp,
			Message:  fmt.Sprintf("unexpected typ %q", typ.Str()),
			Claim:    "typ",
		}}
	}
	return nil
}

func checkRegisteredTypes(payload *jsonvalue.Value) []Issue {
	var issues []Issue
	for _, name := range [...]string{"iss", "sub", "aud", "jti"} {
		val, ok := payload.Get(name)
		if !ok {
			continue
		}
		if name == "aud" {
			if !isAudience(val) {
				issues = append(issues, typeError(name, "a string or an array of strings"))
			}
			continue
		}
		if val.Kind() != jsonvalue.String {
			issues = append(issues, typeError(name, "a string"))
		}
	}
	return issues
}

func isAudience(v *jsonvalue.Value) bool {
	switch v.Kind() {
	case jsonvalue.String:
		return true
	case jsonvalue.Array:
		for _, item := range v.Items() {
			if item.Kind() != jsonvalue.String {
				return false
			}
		}
		return true
	}
	return false
}

func (v *Validator) checkTimes(payload *jsonvalue.Value) []Issue {
	now := v.now()
	nowSec := float64(now.UnixNano()) / float64(time.Second)
	leeway := v.leeway.Seconds()

	var issues []Issue
	if exp, ok := payload.Get("exp"); ok {
		switch {
		case exp.Kind() != jsonvalue.Number:
			issues = append(issues, typeError("exp", "a number"))
		case exp.Float() < nowSec-leeway:
			issues = append(issues, Issue{Severity: Warning, Code: CodeExpired, Message: "token expired", Claim: "exp"})
		}
	}
	if nbf, ok := payload.Get("nbf"); ok {
		switch {
		case nbf.Kind() != jsonvalue.Number:
			issues = append(issues, typeError("nbf", "a number"))
		case nbf.Float() > nowSec+leeway:
			issues = append(issues, Issue{Severity: Warning, Code: CodeNotYetValid, Message: "token not yet valid", Claim: "nbf"})
		}
	}
	if iat, ok := payload.Get("iat"); ok {
		switch {
		case iat.Kind() != jsonvalue.Number:
			issues = append(issues, typeError("iat", "a number"))
		case iat.Float() > nowSec+leeway:
			issues = append(issues, Issue{Severity: Warning, Code: CodeIssuedInFuture, Message: "issued in the future", Claim: "iat"})
		}
	}
	return issues
}

// duplicateKeys reports repeated keys at every object level below root.
func duplicateKeys(path string, v *jsonvalue.Value) []Issue {
	var issues []Issue
	switch v.Kind() {
	case jsonvalue.Object:
		for _, key := range v.DuplicateKeys() {
			issues = append(issues, Issue{
				Severity: Warning,
				Code:     CodeDuplicateKey,
				Message:  fmt.Sprintf("duplicate key %q in %s", key, path),
				Claim:    key,
			})
		}
		for _, m := range v.Members() {
			issues = append(issues, duplicateKeys(path+"."+m.Key, m.Value)...)
		}
	case jsonvalue.Array:
		for i, item := range v.Items() {
			issues = append(issues, duplicateKeys(fmt.Sprintf("%s[%d]", path, i), item)...)
		}
	}
	return issues
}

func typeError(claim, want string) Issue {
	return Issue{
		Severity: Error,
		Code:     CodeInvalidType,
		Message:  fmt.Sprintf("claim %q must be %s", claim, want),
		Claim:    claim,
	}
}
