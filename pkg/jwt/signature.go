package jwt

import (
	"crypto/hmac"
	"fmt"
)

// Sign computes the HMAC of signingInput keyed by secret.
func Sign(signingInput string, secret []byte, alg Algorithm) ([]byte, error) {
	spec, ok := registry[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	mac := hmac.New(spec.hash, secret)
	mac.Write([]byte(signingInput))
	return mac.Sum(nil), nil
}

// Verify recomputes the HMAC and compares it with signature in constant time.
// An unsupported algorithm yields false together with ErrUnsupportedAlgorithm.
func Verify(signingInput string, signature, secret []byte, alg Algorithm) (bool, error) {
	expected, err := Sign(signingInput, secret, alg)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, signature), nil
}
