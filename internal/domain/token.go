package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims is the claim set carried by both token kinds. Access tokens carry
// the session token and the user id; refresh tokens carry the session token
// only. Neither embeds an expiry claim: token lifetime is controlled by
// cookie expiry at the transport boundary.
type Claims struct {
	jwt.RegisteredClaims
	SessionToken string `json:"sessionToken,omitempty"`
	UserID       string `json:"userId,omitempty"`
}
