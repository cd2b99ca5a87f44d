package credential

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
)

func TestParsePayload_ArrayForm(t *testing.T) {
	cookies, err := ParsePayload(
		`[{"name":"_mfp_session","value":"abc","domain":".myfitnesspal.com","path":"/","secure":true}]`,
		DefaultDomain,
	)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "_mfp_session", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
}

func TestParsePayload_LegacyMapForm(t *testing.T) {
	raw := `{"known_user":{"value":"jane","domain":".myfitnesspal.com","path":"/","secure":false},"_mfp_session":{"value":"abc"}}`
	cookies, err := ParsePayload(raw, DefaultDomain)
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	// Legacy map entries come back sorted by name.
	assert.Equal(t, "_mfp_session", cookies[0].Name)
	assert.Equal(t, DefaultDomain, cookies[0].Domain, "missing domain defaults to target")
	assert.Equal(t, "known_user", cookies[1].Name)
}

func TestParsePayload_PairForm(t *testing.T) {
	cookies, err := ParsePayload("name=abc", DefaultDomain)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "name", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, DefaultDomain, cookies[0].Domain)

	cookies, err = ParsePayload("_mfp_session=abc; known_user=jane", DefaultDomain)
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "known_user", cookies[1].Name)

	_, err = ParsePayload("not a cookie", DefaultDomain)
	assert.Error(t, err)
}

func TestParsePayload_Rejects(t *testing.T) {
	_, err := ParsePayload("", DefaultDomain)
	assert.Error(t, err)

	_, err = ParsePayload("{oops", DefaultDomain)
	assert.Error(t, err)

	_, err = ParsePayload(`[{"name":"a","value":""}]`, DefaultDomain)
	assert.Error(t, err, "payload with only empty values is unusable")
}

func TestMarshalPayload_RoundTrip(t *testing.T) {
	in := []browsercookie.Cookie{
		{Name: "_mfp_session", Value: "abc", Domain: "myfitnesspal.com", Path: "/", Secure: true},
		{Name: "known_user", Value: "jane", Domain: "www.myfitnesspal.com", Path: "/"},
	}
	raw, err := MarshalPayload(in)
	require.NoError(t, err)

	out, err := ParsePayload(raw, DefaultDomain)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].Name, out[0].Name)
	assert.Equal(t, in[0].Value, out[0].Value)
	assert.Equal(t, in[1].Domain, out[1].Domain)
}

func TestCredentialJar(t *testing.T) {
	cred := &Credential{
		Cookies: []browsercookie.Cookie{
			{Name: "_mfp_session", Value: "abc", Domain: "myfitnesspal.com", Path: "/"},
		},
		Source: SourceEnvironment,
	}
	jar, err := cred.Jar("https://www.myfitnesspal.com")
	require.NoError(t, err)

	u, _ := url.Parse("https://www.myfitnesspal.com/user/auth_token")
	got := jar.Cookies(u)
	require.NotEmpty(t, got)
	assert.Equal(t, "_mfp_session", got[0].Name)
	assert.Equal(t, "abc", got[0].Value)
}
