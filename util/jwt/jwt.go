package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session cookies are minted by the user-service; IssueSession exists so
// tests and local tooling can produce compatible tokens.
func IssueSession(secret string, userID, roleID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID,
		"role_id": roleID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
