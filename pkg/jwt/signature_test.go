package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/pkg/base64url"
	"github.com/dmitrymomot/jwtinspect/pkg/jwt"
)

const (
	vectorSigningInput = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxMjM0NTY3ODkwIiwibmFtZSI6IkpvaG4gRG9lIiwiaWF0IjoxNTE2MjM5MDIyfQ"
	vectorSignature    = "SflKxwRJSMeKKF2QT4fwpMeJf36POk6yJV_adQssw5c"
)

func TestSign(t *testing.T) {
	t.Parallel()

	t.Run("HS256 known vector", func(t *testing.T) {
		t.Parallel()
		sig, err := jwt.Sign(vectorSigningInput, []byte("your-256-bit-secret"), jwt.HS256)
		require.NoError(t, err)
		assert.Equal(t, vectorSignature, base64url.Encode(sig))
	})

	t.Run("HS384 known vector", func(t *testing.T) {
		t.Parallel()
		sig, err := jwt.Sign("eyJhbGciOiJIUzM4NCIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxIn0", []byte("s"), jwt.HS384)
		require.NoError(t, err)
		assert.Len(t, sig, 48)
		assert.Equal(t, "MXkNbJQ-qOVMhtkZS2FG6cBdaMyQSpmNcYZfcSJuU1oybre93SALdAHxef8MtNAF", base64url.Encode(sig))
	})

	t.Run("empty secret is allowed", func(t *testing.T) {
		t.Parallel()
		sig, err := jwt.Sign("a.b", nil, jwt.HS256)
		require.NoError(t, err)
		assert.Len(t, sig, 32)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		t.Parallel()
		for _, alg := range []jwt.Algorithm{"none", "HS512", "RS256", "", "hs256"} {
			sig, err := jwt.Sign("a.b", []byte("s"), alg)
			assert.Nil(t, sig)
			assert.ErrorIs(t, err, jwt.ErrUnsupportedAlgorithm, alg)
		}
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	sig, err := base64url.Decode(vectorSignature)
	require.NoError(t, err)

	t.Run("matching secret", func(t *testing.T) {
		t.Parallel()
		ok, err := jwt.Verify(vectorSigningInput, sig, []byte("your-256-bit-secret"), jwt.HS256)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		ok, err := jwt.Verify(vectorSigningInput, sig, []byte("wrong"), jwt.HS256)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		t.Parallel()
		ok, err := jwt.Verify(vectorSigningInput, sig, []byte("your-256-bit-secret"), jwt.HS384)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("truncated or empty signature", func(t *testing.T) {
		t.Parallel()
		ok, err := jwt.Verify(vectorSigningInput, sig[:16], []byte("your-256-bit-secret"), jwt.HS256)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = jwt.Verify(vectorSigningInput, nil, []byte("your-256-bit-secret"), jwt.HS256)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		t.Parallel()
		ok, err := jwt.Verify(vectorSigningInput, sig, []byte("x"), "none")
		assert.False(t, ok)
		assert.ErrorIs(t, err, jwt.ErrUnsupportedAlgorithm)
	})
}

func TestAlgorithms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []jwt.Algorithm{jwt.HS256, jwt.HS384}, jwt.Algorithms())
	assert.Equal(t, map[string]string{"HS256": "HMAC-SHA256", "HS384": "HMAC-SHA384"}, jwt.Descriptions())
	assert.Equal(t, "HMAC-SHA384", jwt.HS384.Description())
	assert.Empty(t, jwt.Algorithm("none").Description())

	alg, err := jwt.ParseAlgorithm("HS256")
	require.NoError(t, err)
	assert.Equal(t, jwt.HS256, alg)

	_, err = jwt.ParseAlgorithm("RS256")
	assert.ErrorIs(t, err, jwt.ErrUnsupportedAlgorithm)
}
