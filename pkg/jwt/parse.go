package jwt

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/jwtinspect/pkg/base64url"
	"github.com/dmitrymomot/jwtinspect/pkg/derivation"
	"github.com/dmitrymomot/jwtinspect/pkg/jsonvalue"
)

const segmentCount = 3

// Token is the decoded form of a structurally valid compact JWT.
type Token struct {
	Raw      string
	Segments [segmentCount]string

	Header  *jsonvalue.Value // always an object
	Payload *jsonvalue.Value // always an object

	// SigningInput is Segments[0] + "." + Segments[1].
	SigningInput string

	// Signature holds the decoded third segment. When that segment is not
	// valid base64url the token is still well-formed: Signature is nil and
	// SignatureErr says why.
	Signature    []byte
	SignatureErr error

	Tree *derivation.Production
}

// Parse splits raw into its three segments, decodes header and payload as
// JSON objects and derives the grammar tree.
func Parse(raw string) (*Token, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != segmentCount {
		return nil, &StructuralError{
			Kind:    ErrSegmentCount,
			Message: fmt.Sprintf("expected %d segments, got %d", segmentCount, len(parts)),
		}
	}

	decoded := make([][]byte, 2)
	for i := range decoded {
		b, err := base64url.Decode(parts[i])
		if err != nil {
			return nil, segmentError(ErrSegmentEncoding, i+1, "invalid base64url in segment %d", i+1)
		}
		decoded[i] = b
	}

	objects := make([]*jsonvalue.Value, 2)
	for i, name := range [...]string{"header", "payload"} {
		v, err := jsonvalue.Parse(decoded[i])
		if err != nil {
			return nil, segmentError(ErrSegmentJSON, i+1, "invalid JSON in segment %d", i+1)
		}
		if v.Kind() != jsonvalue.Object {
			return nil, segmentError(ErrNotObject, i+1, "%s is not a JSON object", name)
		}
		objects[i] = v
	}

	tok := &Token{
		Raw:          raw,
		Segments:     [segmentCount]string{parts[0], parts[1], parts[2]},
		Header:       objects[0],
		Payload:      objects[1],
		SigningInput: parts[0] + "." + parts[1],
	}
	if sig, err := base64url.Decode(parts[2]); err != nil {
		tok.SignatureErr = segmentError(ErrSegmentEncoding, 3, "invalid base64url in segment 3")
	} else {
		tok.Signature = sig
	}
	tok.Tree = buildTree(tok)

	return tok, nil
}

// Alg returns the header's "alg" value when it is a string.
func (t *Token) Alg() (string, bool) {
	v, ok := t.Header.Get("alg")
	if !ok || v.Kind() != jsonvalue.String {
		return "", false
	}
	return v.Str(), true
}

func segmentError(kind error, segment int, format string, args ...any) *StructuralError {
	return &StructuralError{Kind: kind, Segment: segment, Message: fmt.Sprintf(format, args...)}
}
