package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/clock"
)

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func TestIssuer_RoundTrip(t *testing.T) {
	c := clock.NewManual(testNow)
	iss := NewIssuer([]byte("secret"), 30*time.Minute, WithClock(c))

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, testNow.Add(30*time.Minute), tok.ExpiresAt)

	claims, err := iss.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "lyfestyler", claims.Iss)
	assert.Equal(t, testNow.Unix(), claims.Iat)
}

func TestIssuer_Rejects(t *testing.T) {
	c := clock.NewManual(testNow)
	iss := NewIssuer([]byte("secret"), time.Minute, WithClock(c))
	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(tok.AccessToken, ".")
	noneHeader := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	other := NewIssuer([]byte("other"), time.Minute, WithClock(c))
	foreign, err := other.Issue("user-1")
	require.NoError(t, err)

	otherIss := NewIssuer([]byte("secret"), time.Minute, WithClock(c), WithIssuer("someone-else"))
	wrongIss, err := otherIss.Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: ErrTokenMissing},
		{name: "two segments", token: "a.b", want: ErrTokenMalformed},
		{name: "other secret", token: foreign.AccessToken, want: ErrInvalidSig},
		{name: "tampered payload", token: parts[0] + "." + parts[1] + "x." + parts[2], want: ErrInvalidSig},
		{name: "bad signature encoding", token: parts[0] + "." + parts[1] + ".!!", want: ErrInvalidSig},
		{name: "alg swap without resign", token: noneHeader + "." + parts[1] + "." + parts[2], want: ErrInvalidSig},
		{name: "issuer mismatch", token: wrongIss.AccessToken, want: ErrMismatchIss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIssuer_RejectsNoneAlgEvenWhenSigned(t *testing.T) {
	secret := []byte("secret")
	iss := NewIssuer(secret, time.Minute, WithClock(clock.NewFixed(testNow)))

	hJSON := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	cJSON := base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"lyfestyler","sub":"u","iat":1,"exp":9999999999}`))
	payload := hJSON + "." + cJSON

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	forged := payload + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	_, err := iss.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidAlg)
}

func TestIssuer_Expiry(t *testing.T) {
	c := clock.NewManual(testNow)
	iss := NewIssuer([]byte("secret"), time.Minute, WithClock(c))
	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	c.Advance(time.Minute + 20*time.Second)
	_, err = iss.Verify(tok.AccessToken)
	require.NoError(t, err, "within skew tolerance")

	c.Advance(time.Minute)
	_, err = iss.Verify(tok.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssuer_MissingSubject(t *testing.T) {
	c := clock.NewFixed(testNow)
	iss := NewIssuer([]byte("secret"), time.Minute, WithClock(c))
	tok, err := iss.Issue("")
	require.NoError(t, err)

	_, err = iss.Verify(tok.AccessToken)
	assert.ErrorIs(t, err, ErrMissingSub)
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: ""},
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer  spaced ", want: "spaced"},
		{header: "Basic Zm9vOmJhcg==", want: ""},
		{header: "Bearer", want: ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/me", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, ExtractBearer(r), "header %q", tt.header)
	}
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", h)
	assert.True(t, CheckPassword(h, "hunter2"))
	assert.False(t, CheckPassword(h, "hunter3"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2"))
}
