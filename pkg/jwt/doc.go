// Package jwt parses, signs, verifies and generates compact JSON Web Tokens
// (RFC 7519) for inspection purposes.
//
// The package does not decide whether a token should be trusted. Parse
// answers "is this string a well-formed JWT" and returns the decoded parts
// together with a derivation tree that explains how the string matched the
// grammar:
//
//	Token     := Header "." Payload "." Signature
//	Header    := base64url(JsonObject)
//	Payload   := base64url(JsonObject)
//	Signature := base64url(bytes)
//
// Claim semantics live in package claims; orchestration of both lives in
// core/analyzer.
//
// # Algorithms
//
// Only the symmetric HMAC family is supported:
//   - HS256: HMAC-SHA256
//   - HS384: HMAC-SHA384
//
// Any other identifier, "none" included, makes Sign, Verify and Generate
// fail with ErrUnsupportedAlgorithm.
//
// # Usage
//
// Parsing a token:
//
//	tok, err := jwt.Parse(raw)
//	if err != nil {
//		var se *jwt.StructuralError
//		if errors.As(err, &se) {
//			log.Println(se.Message) // e.g. "expected 3 segments, got 2"
//		}
//		return
//	}
//	fmt.Println(derivation.Render(tok.Tree))
//
// Verifying the signature:
//
//	ok, err := jwt.Verify(tok.SigningInput, tok.Signature, secret, jwt.HS256)
//
// Generating a token:
//
//	raw, err := jwt.Generate(jwt.GenerationRequest{
//		Header:    map[string]any{"alg": "HS256", "typ": "JWT"},
//		Payload:   map[string]any{"sub": "1"},
//		Secret:    []byte("s"),
//		Algorithm: "HS256",
//	})
//
// The generator trusts the caller's header verbatim; it neither injects nor
// checks "alg" against the requested algorithm.
//
// # Error Handling
//
// Parse returns *StructuralError, which unwraps to ErrStructural and to one
// of ErrSegmentCount, ErrSegmentEncoding, ErrSegmentJSON or ErrNotObject.
// Generate returns *GenerationError, which unwraps to ErrUnsupportedAlgorithm
// or ErrMalformedInput. Signature comparison is constant time.
package jwt
