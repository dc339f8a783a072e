package models

import "github.com/golang-jwt/jwt/v5"

// OwnerClaims are the JWT claims issued for the ledger owner. The tracker is
// single-tenant, so the subject is always the configured owner email.
type OwnerClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
