// Package auth is the boundary identity collaborator: it turns a verified
// account into a bearer token and a bearer token back into the caller's
// account id. Session handling lives elsewhere; the core only consumes the id.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"br.com.tucano.courier/internal/model"
)

const accountIDContextKey = "accountID"

type Tokens struct {
	signingKey []byte
	ttl        time.Duration
}

func New(signingKey string, ttl time.Duration) *Tokens {
	return &Tokens{
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

func (t *Tokens) Issue(accountID model.AccountID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.StandardClaims{
		Subject:   string(accountID),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(t.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) Parse(raw string) (model.AccountID, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", model.ErrorInvalidCredentials
	}
	return model.AccountID(claims.Subject), nil
}

// Middleware extracts the caller's account id from the Authorization header
// and stashes it on the echo context for the handlers.
func (t *Tokens) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			accountID, err := t.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}

			c.Set(accountIDContextKey, accountID)
			return next(c)
		}
	}
}

// CallerID returns the account id the middleware resolved for this request.
func CallerID(c echo.Context) model.AccountID {
	if id, ok := c.Get(accountIDContextKey).(model.AccountID); ok {
		return id
	}
	return ""
}
