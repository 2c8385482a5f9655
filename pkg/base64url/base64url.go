// Package base64url implements the unpadded base64url alphabet used by
// compact JWT serialization (RFC 7515 section 2).
//
// Encode never emits padding. Decode accepts both the unpadded and the padded
// form, rejects characters outside the URL-safe alphabet (including
// whitespace and line breaks that encoding/base64 would otherwise skip) and
// rejects lengths that no byte sequence can produce.
package base64url

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEncoding is the sentinel wrapped by every DecodeError.
var ErrInvalidEncoding = errors.New("invalid base64url encoding")

// DecodeError describes why an input could not be decoded.
type DecodeError struct {
	Offset int    // byte offset of the offending character, -1 for length errors
	Reason string // short description
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidEncoding, e.Reason)
	}
	return fmt.Sprintf("%s: %s at offset %d", ErrInvalidEncoding, e.Reason, e.Offset)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidEncoding }

var encoding = base64.RawURLEncoding.Strict()

// Encode returns the unpadded base64url form of b.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// EncodeString is Encode for string input.
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// Decode reverses Encode. Trailing '=' padding is accepted as long as it
// completes the final quantum to a multiple of four characters.
func Decode(s string) ([]byte, error) {
	data, err := stripPadding(s)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(data); i++ {
		if !isAlphabet(data[i]) {
			return nil, &DecodeError{Offset: i, Reason: fmt.Sprintf("illegal character %q", data[i])}
		}
	}

	if len(data)%4 == 1 {
		return nil, &DecodeError{Offset: -1, Reason: fmt.Sprintf("impossible length %d", len(data))}
	}

	out, err := encoding.DecodeString(data)
	if err != nil {
		// Strict mode rejects non-zero trailing bits.
		var cie base64.CorruptInputError
		if errors.As(err, &cie) {
			return nil, &DecodeError{Offset: int(cie), Reason: "corrupt input"}
		}
		return nil, &DecodeError{Offset: -1, Reason: err.Error()}
	}
	return out, nil
}

// Valid reports whether s decodes without error.
func Valid(s string) bool {
	_, err := Decode(s)
	return err == nil
}

func stripPadding(s string) (string, error) {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return s, nil
	}
	pad := len(s) - idx
	if strings.TrimRight(s[idx:], "=") != "" {
		return "", &DecodeError{Offset: idx, Reason: "padding before end of input"}
	}
	if pad > 2 || len(s)%4 != 0 {
		return "", &DecodeError{Offset: -1, Reason: fmt.Sprintf("bad padding for length %d", len(s))}
	}
	return s[:idx], nil
}

func isAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
