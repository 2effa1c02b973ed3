package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims accepted by the optional auth gate.
// Tokens are issued by an external identity provider that publishes a JWKS.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}
