package jwt

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
)

// Algorithm is a JWS "alg" identifier.
type Algorithm string

const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
)

type algorithmSpec struct {
	hash        func() hash.Hash
	description string
}

// registry is read-only after init.
var registry = map[Algorithm]algorithmSpec{
	HS256: {hash: sha256.New, description: "HMAC-SHA256"},
	HS384: {hash: sha512.New384, description: "HMAC-SHA384"},
}

// Supported reports whether a can be used to sign and verify.
func (a Algorithm) Supported() bool {
	_, ok := registry[a]
	return ok
}

// Description returns the human name, e.g. "HMAC-SHA256", or "" if unsupported.
func (a Algorithm) Description() string {
	return registry[a].description
}

func (a Algorithm) String() string { return string(a) }

// ParseAlgorithm validates an identifier against the supported set.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if !a.Supported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
	return a, nil
}

// Algorithms lists the supported identifiers in lexical order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(registry))
	for a := range registry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Descriptions maps every supported identifier to its description.
func Descriptions() map[string]string {
	out := make(map[string]string, len(registry))
	for _, a := range Algorithms() {
		out[string(a)] = a.Description()
	}
	return out
}
