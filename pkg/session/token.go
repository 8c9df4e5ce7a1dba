// Package session issues and verifies the signed token that marks a browser
// as logged in.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the operator identity. Tokens have no expiry: a session lasts
// until the operator logs out and the client discards the token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Issue returns an HS256-signed token for email.
func Issue(secret, issuer, email string, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("session: empty secret")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token signature and returns its claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("session: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, errors.New("session: invalid claims")
	}
	return claims, nil
}
