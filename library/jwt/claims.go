package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims session claims carried by the login cookie.
//
// Subject is the user id, Account is the login email that the owner
// check compares against the configured owner address.
type UserClaims struct {
	jwt.RegisteredClaims
	Account     string `json:"account"`
	DisplayName string `json:"display_name"`
}
