// Package token issues and validates the two token families of the API:
// short-lived HS256 session tokens carried as Bearer credentials, and
// purpose-scoped email tokens (confirmation, password reset) embedded in
// links sent by mail. Both are signed with the same application secret;
// the purpose claim keeps them from being interchangeable.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Email token purposes.
const (
	PurposeConfirmEmail  = "email_confirm"
	PurposePasswordReset = "password_reset"
)

// SessionClaims are the standard JWT claims plus the application fields.
// Role is included so the RBAC middleware can decide without a DB read.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"` // "Admin" | "Manager" | "User"
}

// EmailClaims scope a token to one email address and one purpose.
type EmailClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// GenerateSession signs a session JWT carrying userID, email and role.
func GenerateSession(secret, userID, email, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: empty secret")
	}
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ParseSession validates a session token and returns userID, email and role.
// Returns an error for invalid, expired or wrongly-signed tokens.
func ParseSession(secret, tokenString string) (userID, email, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("token: empty secret")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, keyFunc(secret))
	if err != nil {
		return "", "", "", err
	}
	claims, ok := tok.Claims.(*SessionClaims)
	if !ok || !tok.Valid {
		return "", "", "", fmt.Errorf("token: invalid claims")
	}
	return claims.UserID, claims.Email, claims.Role, nil
}

// GenerateEmail signs a purpose-scoped token for the given email address.
func GenerateEmail(secret, emailAddr, purpose, issuer string, expHours int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: empty secret")
	}
	now := time.Now()
	claims := EmailClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   emailAddr,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expHours) * time.Hour)),
		},
		Purpose: purpose,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ValidateEmail checks that tokenString was issued for emailAddr with the
// given purpose. A token minted for another address or purpose fails.
func ValidateEmail(secret, tokenString, emailAddr, purpose string) error {
	if secret == "" {
		return fmt.Errorf("token: empty secret")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &EmailClaims{}, keyFunc(secret))
	if err != nil {
		return err
	}
	claims, ok := tok.Claims.(*EmailClaims)
	if !ok || !tok.Valid {
		return fmt.Errorf("token: invalid claims")
	}
	if claims.Subject != emailAddr {
		return fmt.Errorf("token: issued for a different email")
	}
	if claims.Purpose != purpose {
		return fmt.Errorf("token: wrong purpose")
	}
	return nil
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}
}
