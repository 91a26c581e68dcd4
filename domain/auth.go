package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/mintmarket/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// GenerateNonce issues a short-lived nonce to be embedded into the
	// signing message for address
	GenerateNonce(c ctx.Ctx, address Address) (string, error)
	SignToken(c ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(c ctx.Ctx, token string) (string, error)
}
