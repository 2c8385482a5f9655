package jwt

import (
	"fmt"
	"strconv"

	"github.com/dmitrymomot/jwtinspect/pkg/derivation"
	"github.com/dmitrymomot/jwtinspect/pkg/jsonvalue"
)

// Grammar symbols used as derivation tree labels.
const (
	SymbolToken     = "Token"
	SymbolHeader    = "Header"
	SymbolPayload   = "Payload"
	SymbolSignature = "Signature"
	SymbolSegment   = "Segment"
	SymbolDigest    = "Digest"
	SymbolInvalid   = "Invalid"
	SymbolObject    = "JsonObject"
	SymbolMember    = "JsonMember"
	SymbolArray     = "JsonArray"
	SymbolKey       = "Key"
	SymbolString    = "String"
	SymbolNumber    = "Number"
	SymbolBoolean   = "Boolean"
	SymbolNull      = "Null"
)

func buildTree(t *Token) *derivation.Production {
	sig := derivation.Expand(SymbolSignature, derivation.Leaf(SymbolSegment, t.Segments[2]))
	if t.SignatureErr != nil {
		sig.Append(derivation.Leaf(SymbolInvalid, "not base64url"))
	} else {
		sig.Append(derivation.Leaf(SymbolDigest, fmt.Sprintf("%d bytes", len(t.Signature))))
	}

	return derivation.Expand(SymbolToken,
		derivation.Expand(SymbolHeader,
			derivation.Leaf(SymbolSegment, t.Segments[0]),
			valueNode(t.Header),
		),
		derivation.Expand(SymbolPayload,
			derivation.Leaf(SymbolSegment, t.Segments[1]),
			valueNode(t.Payload),
		),
		sig,
	)
}

// valueNode mirrors the JSON grammar; members and items keep source order.
func valueNode(v *jsonvalue.Value) derivation.Node {
	switch v.Kind() {
	case jsonvalue.Object:
		obj := derivation.Expand(SymbolObject)
		for _, m := range v.Members() {
			obj.Append(derivation.Expand(SymbolMember,
				derivation.Leaf(SymbolKey, strconv.Quote(m.Key)),
				valueNode(m.Value),
			))
		}
		return obj
	case jsonvalue.Array:
		arr := derivation.Expand(SymbolArray)
		for _, item := range v.Items() {
			arr.Append(valueNode(item))
		}
		return arr
	case jsonvalue.String:
		return derivation.Leaf(SymbolString, strconv.Quote(v.Str()))
	case jsonvalue.Number:
		return derivation.Leaf(SymbolNumber, v.Raw())
	case jsonvalue.Bool:
		return derivation.Leaf(SymbolBoolean, strconv.FormatBool(v.Bool()))
	}
	return derivation.Leaf(SymbolNull, "null")
}
