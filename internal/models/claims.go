package models

import "github.com/golang-jwt/jwt/v5"

// AccountClaims are the JWT claims issued at login.
type AccountClaims struct {
	jwt.RegisteredClaims
	AccountID    string `json:"accountId"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion int    `json:"tokenVersion"`
}
