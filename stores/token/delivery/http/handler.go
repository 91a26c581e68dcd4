package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/nftitem"
	"github.com/mintmarket/goapi/middleware"
)

type handler struct {
	token nftitem.Usecase
}

// New inits token handlers
func New(e *echo.Echo, authMiddleware echo.MiddlewareFunc, token nftitem.Usecase) {
	h := &handler{token}

	e.GET("/tokens", h.getTokens, middleware.CacheHttp(30*time.Second))
	e.POST("/tokens", h.mint, authMiddleware)

	gs := e.Group("/token/:tokenId")

	gs.GET("", h.getToken)
	gs.GET("/exists", h.exists)
	gs.POST("/transfer", h.transfer, authMiddleware)
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := nftitem.MintPayload{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p.Minter = address

	res, err := h.token.Mint(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) getTokens(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner        domain.Address      `query:"owner"`
		CollectionId domain.CollectionId `query:"collectionId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	var (
		res []*nftitem.NftItem
		err error
	)
	switch {
	case len(p.Owner) > 0:
		res, err = h.token.GetNFTsByOwner(ctx, p.Owner)
	case p.CollectionId > 0:
		res, err = h.token.GetNFTsByCollection(ctx, p.CollectionId)
	default:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		TokenId domain.TokenId `param:"tokenId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.token.FindOne(ctx, p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) exists(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		TokenId domain.TokenId `param:"tokenId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.token.TokenExists(ctx, p.TokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type payload struct {
		TokenId domain.TokenId `param:"tokenId"`
		To      domain.Address `json:"to" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.token.Transfer(ctx, address, p.TokenId, p.To)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
