package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims this backend cares about. The subject
// claim is the actor id used for membership checks.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
