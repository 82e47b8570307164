// Package auth issues and verifies HS256 session tokens. Sessions are
// stateless: the token itself carries the client document, so tests and
// handlers never share mutable login state.
package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gobank/config"
	"gobank/models"
)

const sessionTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// Claims represent a parsed session token.
type Claims struct {
	Document string `json:"document"`

	jwt.StandardClaims
}

func IssueToken(document string) (string, error) {
	now := time.Now()
	claims := Claims{
		Document: document,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   document,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(sessionTTL).Unix(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret())
}

func ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return config.JWTSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentClient returns the client loaded by the authentication middleware,
// or nil outside an authenticated request.
func CurrentClient(c *fiber.Ctx) *models.Client {
	client, _ := c.Locals("CurrentClient").(*models.Client)
	return client
}
