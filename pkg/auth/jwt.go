package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of an issued token and its backing session.
const TokenTTL = 24 * time.Hour

// Claims are the JWT claims carried by an admin token. The ID registered
// claim (jti) doubles as the session key so tokens can be revoked on logout.
type Claims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	IsSys    bool   `json:"is_sys"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "medstock-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken issues a signed token for an admin and returns the token
// together with its session id.
func GenerateToken(adminID uint, username string, isSys bool) (string, string, error) {
	sessionID := uuid.NewString()
	now := time.Now()

	claims := Claims{
		AdminID:  adminID,
		Username: username,
		IsSys:    isSys,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey())
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, sessionID, nil
}

// ValidateToken parses and verifies a token and returns its claims
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
