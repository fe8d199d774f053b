package tokenstore

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the bearer token carries an exp claim in the past.
// The token signature is NOT verified; the server remains the authority on
// token validity. Tokens without an exp claim are treated as unexpired.
func Expired(token string) (bool, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, fmt.Errorf("parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return false, nil
	}
	return exp.Before(time.Now()), nil
}
