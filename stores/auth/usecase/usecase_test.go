package usecase

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/service/redis"
	redisMocks "github.com/mintmarket/goapi/service/redis/mocks"
)

const signatureMsg = "Sign this one-time nonce to log in: %s"

type authUCSuite struct {
	suite.Suite

	redis *redisMocks.Service
	im    domain.AuthUsecase
}

func TestAuthUCSuite(t *testing.T) {
	suite.Run(t, new(authUCSuite))
}

func (s *authUCSuite) SetupTest() {
	s.redis = &redisMocks.Service{}
	s.im = New(&AuthUseCaseCfg{
		JwtSecret:    "jwt-secret",
		SignatureMsg: signatureMsg,
		Redis:        s.redis,
	})
}

func (s *authUCSuite) TestSignAndParseToken() {
	ctx := bCtx.Background()

	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	nonce := "test-nonce"
	msg := []byte(fmt.Sprintf(signatureMsg, nonce))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	s.Require().NoError(err)

	s.redis.On("Get", mock.Anything, "authNonce:"+address.ToLowerStr()).Return([]byte(nonce), nil)
	s.redis.On("Del", mock.Anything, mock.Anything).Return(int64(1), nil)

	tkn, err := s.im.SignToken(ctx, address, hexutil.Encode(sig))
	s.Require().NoError(err)
	s.NotEmpty(tkn)

	ads, err := s.im.ParseToken(ctx, tkn)
	s.NoError(err)
	s.Equal(address.ToLowerStr(), ads)
}

func (s *authUCSuite) TestSignTokenWrongSigner() {
	ctx := bCtx.Background()

	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	otherKey, err := crypto.GenerateKey()
	s.Require().NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	nonce := "test-nonce"
	msg := []byte(fmt.Sprintf(signatureMsg, nonce))
	sig, err := crypto.Sign(accounts.TextHash(msg), otherKey)
	s.Require().NoError(err)

	s.redis.On("Get", mock.Anything, mock.Anything).Return([]byte(nonce), nil)
	s.redis.On("Del", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err = s.im.SignToken(ctx, address, hexutil.Encode(sig))
	s.Equal(ErrInvalidSignature, err)
}

func (s *authUCSuite) TestSignTokenExpiredNonce() {
	ctx := bCtx.Background()

	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	s.redis.On("Get", mock.Anything, mock.Anything).Return(nil, redis.ErrNotFound)

	_, err = s.im.SignToken(ctx, address, "0x00")
	s.Equal(ErrInvalidNonce, err)
}

func (s *authUCSuite) TestGenerateNonce() {
	ctx := bCtx.Background()

	s.redis.On("Set", mock.Anything, mock.Anything, mock.Anything, nonceTTL).Return(nil)

	nonce, err := s.im.GenerateNonce(ctx, "0xC37C41601bc88c91b6569c701F08D37fa0f565F0")
	s.NoError(err)
	s.NotEmpty(nonce)

	_, err = s.im.GenerateNonce(ctx, "not-an-address")
	s.Equal(domain.ErrInvalidAddress, err)
}
