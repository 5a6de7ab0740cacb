// Package auth implements password hashing and HS256 bearer tokens.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/clock"
)

// Token verification failures.
var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenMalformed = errors.New("token malformed")
	ErrInvalidAlg     = errors.New("invalid algorithm: must be HS256")
	ErrInvalidSig     = errors.New("invalid signature")
	ErrTokenExpired   = errors.New("token expired")
	ErrMissingSub     = errors.New("missing sub claim")
	ErrMismatchIss    = errors.New("issuer mismatch")
)

const (
	algHS256    = "HS256"
	TokenType   = "bearer"
	defaultIss  = "lyfestyler"
	allowedSkew = 30 // seconds
)

// Claims is the payload carried by an access token.
type Claims struct {
	Iss string `json:"iss"`
	Sub string `json:"sub"`
	Iat int64  `json:"iat"`
	Exp int64  `json:"exp"`
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Issuer signs and verifies access tokens with a shared secret.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clock.Clock
}

// IssuerOption customizes an Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the clock used for iat/exp.
func WithClock(c clock.Clock) IssuerOption {
	return func(i *Issuer) {
		if c != nil {
			i.clock = c
		}
	}
}

// WithIssuer overrides the iss claim.
func WithIssuer(iss string) IssuerOption {
	return func(i *Issuer) {
		if iss != "" {
			i.issuer = iss
		}
	}
}

func NewIssuer(secret []byte, ttl time.Duration, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		secret: secret,
		issuer: defaultIss,
		ttl:    ttl,
		clock:  clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue returns a signed token whose subject is userID.
func (i *Issuer) Issue(userID string) (Token, error) {
	now := i.clock.Now()
	exp := now.Add(i.ttl)
	signed, err := sign(i.secret, Claims{
		Iss: i.issuer,
		Sub: userID,
		Iat: now.Unix(),
		Exp: exp.Unix(),
	})
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, TokenType: TokenType, ExpiresAt: exp}, nil
}

// Verify checks the signature, algorithm, issuer and expiry of token.
func (i *Issuer) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrTokenMissing
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrTokenMalformed
	}

	// Signature first, before any claim is trusted.
	payload := parts[0] + "." + parts[1]
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(payload))
	expectedSig := mac.Sum(nil)

	actualSig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrInvalidSig
	}
	if !hmac.Equal(expectedSig, actualSig) {
		return Claims{}, ErrInvalidSig
	}

	hJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Claims{}, ErrTokenMalformed
	}
	var h header
	if err := json.Unmarshal(hJSON, &h); err != nil {
		return Claims{}, ErrTokenMalformed
	}
	if h.Alg != algHS256 {
		return Claims{}, ErrInvalidAlg
	}

	cJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrTokenMalformed
	}
	var claims Claims
	if err := json.Unmarshal(cJSON, &claims); err != nil {
		return Claims{}, ErrTokenMalformed
	}

	if claims.Sub == "" {
		return Claims{}, ErrMissingSub
	}
	if claims.Exp == 0 || i.clock.Now().Unix() > claims.Exp+allowedSkew {
		return Claims{}, ErrTokenExpired
	}
	if claims.Iss != i.issuer {
		return Claims{}, ErrMismatchIss
	}
	return claims, nil
}

func sign(secret []byte, claims Claims) (string, error) {
	hJSON, err := json.Marshal(header{Alg: algHS256, Typ: "JWT"})
	if err != nil {
		return "", err
	}
	cJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(hJSON) + "." + base64.RawURLEncoding.EncodeToString(cJSON)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return payload + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// ExtractBearer returns the token from an "Authorization: Bearer <token>"
// header, or "" when absent.
func ExtractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
