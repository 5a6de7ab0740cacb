// Package verification keeps short-lived email verification codes.
package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// CodeLength is the number of decimal digits in a generated code.
const CodeLength = 6

// Store maps an email to its pending code.
type Store interface {
	// Put replaces any pending code for email.
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Consume reports whether code matches the unexpired pending code for
	// email and removes it on a match.
	Consume(ctx context.Context, email, code string) (bool, error)
	// Sweep removes expired codes and returns how many were removed.
	Sweep(ctx context.Context) (int, error)
}

// GenerateCode returns CodeLength random decimal digits.
func GenerateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func codesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
