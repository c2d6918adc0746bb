package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the roles recognised by the API.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleInvigilator UserRole = "invigilator"
)

// JWTClaims carries the authenticated identity through the request context.
// Tokens are issued by the institution's identity provider; this service
// only validates them.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
