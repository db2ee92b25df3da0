// app/echoServer/jwtx/caller.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Ursulinastarry/book-library/model"
)

// CallerFromContext reads the identity the session middleware verified.
// The user-service issues tokens with claims sub (user id) and role_id.
func CallerFromContext(c echo.Context) (model.Caller, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return model.Caller{}, errors.New("no session token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Caller{}, errors.New("invalid session claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return model.Caller{}, errors.New("sub missing in claims")
	}
	role, ok := claims["role_id"].(float64)
	if !ok {
		return model.Caller{}, errors.New("role_id missing in claims")
	}
	return model.Caller{UserID: int64(sub), RoleID: int64(role)}, nil
}
