package claims_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/pkg/claims"
	"github.com/dmitrymomot/jwtinspect/pkg/jsonvalue"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func fixedClock() time.Time { return fixedNow }

func obj(t *testing.T, s string) *jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.ParseString(s)
	require.NoError(t, err)
	return v
}

func validate(t *testing.T, header, payload string, opts ...claims.Option) []claims.Issue {
	t.Helper()
	opts = append([]claims.Option{claims.WithClock(fixedClock)}, opts...)
	return claims.New(opts...).Validate(obj(t, header), obj(t, payload))
}

func TestValidateAlg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		errors   []string
		warnings []string
	}{
		{"HS256", `{"alg":"HS256","typ":"JWT"}`, []string{}, []string{}},
		{"HS384", `{"alg":"HS384"}`, []string{}, []string{}},
		{"missing", `{"typ":"JWT"}`, []string{"missing alg"}, []string{}},
		{"asymmetric", `{"alg":"RS256"}`, []string{"unsupported alg"}, []string{}},
		{"HS512", `{"alg":"HS512"}`, []string{"unsupported alg"}, []string{}},
		{"case matters", `{"alg":"hs256"}`, []string{"unsupported alg"}, []string{}},
		{"not a string", `{"alg":256}`, []string{"unsupported alg"}, []string{}},
		{"none", `{"alg":"none"}`, []string{"unsupported alg"}, []string{"insecure: alg=none"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issues := validate(t, tt.header, `{}`)
			assert.Equal(t, tt.errors, claims.Messages(issues, claims.Error))
			assert.Equal(t, tt.warnings, claims.Messages(issues, claims.Warning))
		})
	}
}

func TestValidateAllowNone(t *testing.T) {
	t.Parallel()
	issues := validate(t, `{"alg":"none"}`, `{}`, claims.WithAllowNone(true))
	assert.Empty(t, claims.Messages(issues, claims.Error))
	assert.Equal(t, []string{"insecure: alg=none"}, claims.Messages(issues, claims.Warning))

	issues = validate(t, `{"alg":"RS256"}`, `{}`, claims.WithAllowNone(true))
	assert.Equal(t, []string{"unsupported alg"}, claims.Messages(issues, claims.Error))
}

func TestValidateTyp(t *testing.T) {
	t.Parallel()

	issues := validate(t, `{"alg":"HS256","typ":"jwt"}`, `{}`)
	assert.Empty(t, issues)

	issues = validate(t, `{"alg":"HS256","typ":"at+jwt"}`, `{}`)
	assert.Equal(t, []string{`unexpected typ "at+jwt"`}, claims.Messages(issues, claims.Warning))
	assert.Empty(t, claims.Messages(issues, claims.Error))

	issues = validate(t, `{"alg":"HS256","typ":1}`, `{}`)
	assert.Equal(t, []string{`claim "typ" must be a string`}, claims.Messages(issues, claims.Error))
}

func TestValidateTimeClaims(t *testing.T) {
	t.Parallel()
	now := fixedNow.Unix()
	header := `{"alg":"HS256"}`

	t.Run("expired yields exactly one warning", func(t *testing.T) {
		t.Parallel()
		issues := validate(t, header, `{"exp":1000000000}`)
		require.Len(t, issues, 1)
		assert.Equal(t, claims.Warning, issues[0].Severity)
		assert.Equal(t, claims.CodeExpired, issues[0].Code)
		assert.Equal(t, "token expired", issues[0].Message)
	})

	t.Run("future exp is fine", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validate(t, header, jsonf(`{"exp":%d}`, now+60)))
	})

	t.Run("exp equal to now is not expired", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validate(t, header, jsonf(`{"exp":%d}`, now)))
	})

	t.Run("fractional exp", func(t *testing.T) {
		t.Parallel()
		issues := validate(t, header, jsonf(`{"exp":%d.5}`, now-1))
		assert.Equal(t, []string{"token expired"}, claims.Messages(issues, claims.Warning))
	})

	t.Run("non numeric exp is an error", func(t *testing.T) {
		t.Parallel()
		issues := validate(t, header, `{"exp":"tomorrow"}`)
		assert.Equal(t, []string{`claim "exp" must be a number`}, claims.Messages(issues, claims.Error))
		assert.Empty(t, claims.Messages(issues, claims.Warning))
	})

	t.Run("nbf in the future", func(t *testing.T) {
		t.Parallel()
		issues := validate(t, header, jsonf(`{"nbf":%d}`, now+3600))
		assert.Equal(t, []string{"token not yet valid"}, claims.Messages(issues, claims.Warning))
		assert.Empty(t, claims.Messages(issues, claims.Error))
	})

	t.Run("nbf in the past", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validate(t, header, jsonf(`{"nbf":%d}`, now-10)))
	})

	t.Run("non numeric nbf", func(t *testing.T) {
		t.Parallel()
		issues := validate(t, header, `{"nbf":null}`)
		assert.Equal(t, []string{`claim "nbf" must be a number`}, claims.Messages(issues, claims.Error))
	})

	t.Run("iat in the future", func(t *testing.T) {
		t.Parallel()
		issues := validate(t, header, jsonf(`{"iat":%d}`, now+1))
		assert.Equal(t, []string{"issued in the future"}, claims.Messages(issues, claims.Warning))
	})

	t.Run("non numeric iat", func(t *testing.T) {
		t.Parallel()
		issues := validate(t, header, `{"iat":true}`)
		assert.Equal(t, []string{`claim "iat" must be a number`}, claims.Messages(issues, claims.Error))
	})

	t.Run("leeway absorbs small skew", func(t *testing.T) {
		t.Parallel()
		payload := jsonf(`{"exp":%d,"nbf":%d,"iat":%d}`, now-30, now+30, now+30)
		assert.Len(t, validate(t, header, payload), 3)
		assert.Empty(t, validate(t, header, payload, claims.WithLeeway(time.Minute)))
	})

	t.Run("absent time claims raise nothing", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, validate(t, header, `{"sub":"1"}`))
	})
}

func TestValidateRegisteredClaimTypes(t *testing.T) {
	t.Parallel()
	header := `{"alg":"HS256"}`

	assert.Empty(t, validate(t, header, `{"iss":"a","sub":"b","aud":"c","jti":"d"}`))
	assert.Empty(t, validate(t, header, `{"aud":["x","y"]}`))
	assert.Empty(t, validate(t, header, `{"aud":[]}`))
	assert.Empty(t, validate(t, header, `{"custom":{"anything":[1,2]}}`), "custom claims are opaque")

	issues := validate(t, header, `{"iss":1,"sub":null,"aud":["x",2],"jti":{}}`)
	assert.Equal(t, []string{
		`claim "iss" must be a string`,
		`claim "sub" must be a string`,
		`claim "aud" must be a string or an array of strings`,
		`claim "jti" must be a string`,
	}, claims.Messages(issues, claims.Error))
	for _, i := range issues {
		assert.Equal(t, claims.CodeInvalidType, i.Code)
	}
}

func TestValidateDuplicateKeys(t *testing.T) {
	t.Parallel()

	issues := validate(t, `{"alg":"HS256","alg":"HS384"}`, `{"sub":"1","meta":{"a":1,"a":2},"sub":"2"}`)
	assert.Empty(t, claims.Messages(issues, claims.Error))
	assert.Equal(t, []string{
		`duplicate key "alg" in header`,
		`duplicate key "sub" in payload`,
		`duplicate key "a" in payload.meta`,
	}, claims.Messages(issues, claims.Warning))
}

func TestValidateDuplicateAlgUsesLastValue(t *testing.T) {
	t.Parallel()
	issues := validate(t, `{"alg":"HS256","alg":"none"}`, `{}`)
	assert.Contains(t, claims.Messages(issues, claims.Warning), "insecure: alg=none")
	assert.Equal(t, []string{"unsupported alg"}, claims.Messages(issues, claims.Error))
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	header := obj(t, `{"alg":"none","typ":"JWT"}`)
	payload := obj(t, `{"exp":1,"a":1,"a":2}`)

	before, err := payload.MarshalJSON()
	require.NoError(t, err)

	claims.New(claims.WithClock(fixedClock)).Validate(header, payload)

	after, err := payload.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, payload.Members(), 3)
}

func TestValidateDefaultsToWallClock(t *testing.T) {
	t.Parallel()
	issues := claims.New().Validate(obj(t, `{"alg":"HS256"}`), obj(t, `{"exp":1000000000}`))
	assert.Equal(t, []string{"token expired"}, claims.Messages(issues, claims.Warning))
}

func TestIssueHelpers(t *testing.T) {
	t.Parallel()
	issues := []claims.Issue{
		{Severity: claims.Warning, Message: "w"},
		{Severity: claims.Error, Message: "e"},
	}
	assert.True(t, claims.HasErrors(issues))
	assert.False(t, claims.HasErrors(issues[:1]))
	assert.Equal(t, []string{}, claims.Messages(nil, claims.Error))
	assert.Equal(t, "error: e", issues[1].String())

	text, err := claims.Warning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(text))
}
