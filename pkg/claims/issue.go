package claims

import "fmt"

// Severity classifies an Issue.
type Severity uint8

const (
	// Error marks a violation of the token contract.
	Error Severity = iota + 1
	// Warning marks a risky but not invalid state.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// MarshalText lets Severity serialize as its name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Stable issue codes.
const (
	CodeMissingAlg       = "missing_alg"
	CodeUnsupportedAlg   = "unsupported_alg"
	CodeInsecureAlgNone  = "insecure_alg_none"
	CodeInvalidType      = "invalid_claim_type"
	CodeUnexpectedTyp    = "unexpected_typ"
	CodeExpired          = "token_expired"
	CodeNotYetValid      = "token_not_yet_valid"
	CodeIssuedInFuture   = "issued_in_future"
	CodeDuplicateKey     = "duplicate_key"
	CodeInvalidSignature = "invalid_signature_encoding"
)

// Issue is one validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Claim    string   `json:"claim,omitempty"`
}

func (i Issue) String() string {
	return i.Severity.String() + ": " + i.Message
}

// Messages returns the messages of issues with the given severity, in order.
// The result is never nil.
func Messages(issues []Issue, sev Severity) []string {
	out := []string{}
	for _, i := range issues {
		if i.Severity == sev {
			out = append(out, i.Message)
		}
	}
	return out
}

// HasErrors reports whether any issue is an Error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}
