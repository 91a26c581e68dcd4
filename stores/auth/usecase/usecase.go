package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/ethereum"
	"github.com/mintmarket/goapi/base/validator"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/keys"
	"github.com/mintmarket/goapi/service/redis"
)

const (
	nonceTTL = 10 * time.Minute
	tokenTTL = 24 * time.Hour
)

var (
	ErrInvalidNonce     = fmt.Errorf("invalid or expired nonce")
	ErrInvalidSignature = fmt.Errorf("invalid signature")
)

var timeNow = time.Now

type AuthUseCaseCfg struct {
	JwtSecret    string
	SignatureMsg string
	Redis        redis.Service
}

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	redis        redis.Service
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	return &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		signatureMsg: cfg.SignatureMsg,
		redis:        cfg.Redis,
	}
}

func (im *impl) GenerateNonce(c ctx.Ctx, address domain.Address) (string, error) {
	if !validator.IsValidAddress(string(address)) {
		return "", domain.ErrInvalidAddress
	}

	nonce := uuid.NewString()

	key := keys.RedisKey(keys.PfxAuthNonce, address.ToLowerStr())
	if err := im.redis.Set(c, key, []byte(nonce), nonceTTL); err != nil {
		c.WithField("err", err).Error("redis.Set failed")
		return "", err
	}

	return nonce, nil
}

func (im *impl) SignToken(c ctx.Ctx, address domain.Address, signature string) (string, error) {
	if !validator.IsValidAddress(string(address)) {
		return "", domain.ErrInvalidAddress
	}

	key := keys.RedisKey(keys.PfxAuthNonce, address.ToLowerStr())

	nonce, err := im.redis.Get(c, key)
	if err == redis.ErrNotFound {
		return "", ErrInvalidNonce
	} else if err != nil {
		c.WithField("err", err).Error("redis.Get failed")
		return "", err
	}

	// a nonce is good for exactly one attempt
	defer im.redis.Del(c, key)

	msg := []byte(fmt.Sprintf(im.signatureMsg, string(nonce)))
	if isValid, err := ethereum.ValidateMsgSignature(msg, signature, string(address)); err != nil {
		c.WithField("err", err).Error("ethereum.ValidateMsgSignature failed")
		return "", err
	} else if !isValid {
		return "", ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: timeNow().Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}

	return ss, nil
}

func (im *impl) ParseToken(c ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", fmt.Errorf("invalid token")
}
