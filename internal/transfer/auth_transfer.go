package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
