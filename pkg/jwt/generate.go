package jwt

import (
	"encoding/json"

	"github.com/dmitrymomot/jwtinspect/pkg/base64url"
	"github.com/dmitrymomot/jwtinspect/pkg/jsonvalue"
)

// GenerationRequest is the input of Generate. Header and Payload may be any
// value that marshals to a JSON object: maps, structs, json.RawMessage or
// *jsonvalue.Value. An empty Secret is allowed.
type GenerationRequest struct {
	Header    any
	Payload   any
	Secret    []byte
	Algorithm string
}

// Generate encodes header and payload, signs them and returns the compact
// token. No partial token is returned on failure.
func Generate(req GenerationRequest) (string, error) {
	alg, err := ParseAlgorithm(req.Algorithm)
	if err != nil {
		return "", &GenerationError{Kind: ErrUnsupportedAlgorithm, Message: "unsupported algorithm", Cause: err}
	}

	header, err := encodeObject(req.Header)
	if err != nil {
		return "", err
	}
	payload, err := encodeObject(req.Payload)
	if err != nil {
		return "", err
	}

	signingInput := header + "." + payload
	sig, err := Sign(signingInput, req.Secret, alg)
	if err != nil {
		return "", &GenerationError{Kind: ErrUnsupportedAlgorithm, Message: "unsupported algorithm", Cause: err}
	}

	return signingInput + "." + base64url.Encode(sig), nil
}

func encodeObject(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", &GenerationError{Kind: ErrMalformedInput, Message: "malformed header/payload", Cause: err}
	}
	parsed, err := jsonvalue.Parse(b)
	if err != nil || parsed.Kind() != jsonvalue.Object {
		return "", &GenerationError{Kind: ErrMalformedInput, Message: "malformed header/payload", Cause: err}
	}
	return base64url.Encode(b), nil
}
