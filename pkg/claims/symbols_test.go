package claims_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/pkg/claims"
)

func jsonf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func TestSymbols(t *testing.T) {
	t.Parallel()

	symbols := claims.Symbols(
		obj(t, `{"alg":"HS256","typ":"JWT"}`),
		obj(t, `{"sub":"1","exp":10,"roles":["a"],"sub":"2"}`),
	)

	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"header.alg", "header.typ", "payload.sub", "payload.exp", "payload.roles"}, names)

	assert.Equal(t, "string", symbols[2].Type)
	assert.Equal(t, "2", symbols[2].Value.Str())
	assert.Equal(t, "payload", symbols[2].Scope)
	assert.Equal(t, "number", symbols[3].Type)
	assert.Equal(t, "array", symbols[4].Type)

	out, err := json.Marshal(symbols[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"header.alg","type":"string","value":"HS256","scope":"header"}`, string(out))
}

func TestSymbolsEmpty(t *testing.T) {
	t.Parallel()
	symbols := claims.Symbols(nil, nil)
	assert.NotNil(t, symbols)
	assert.Empty(t, symbols)
}
