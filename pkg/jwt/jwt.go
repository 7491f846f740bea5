// Package jwt emite y valida los tokens de sesión (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret no se firma ni se valida sin clave.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Identity lo que el token afirma del usuario; basta para autorizar sin ir a la DB.
type Identity struct {
	UserID     string
	Role       string
	LocationID string
}

// Claims el user id viaja en sub; rol y ubicación como claims propios.
type Claims struct {
	jwt.RegisteredClaims
	Role       string `json:"role"`
	LocationID string `json:"location_id,omitempty"`
}

// Generate firma un token para id válido durante ttl.
func Generate(secret, issuer string, ttl time.Duration, id Identity) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:       id.Role,
		LocationID: id.LocationID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve la identidad.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, ErrEmptySecret
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	var claims Claims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("jwt: %w", err)
	}
	if claims.Subject == "" {
		return Identity{}, errors.New("jwt: token sin sub")
	}
	return Identity{UserID: claims.Subject, Role: claims.Role, LocationID: claims.LocationID}, nil
}
