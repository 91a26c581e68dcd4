package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/marketplace"
)

type handler struct {
	marketplace marketplace.Usecase
}

// New inits marketplace handlers
func New(e *echo.Echo, authMiddleware echo.MiddlewareFunc, marketplace marketplace.Usecase) {
	h := &handler{marketplace}

	gs := e.Group("/token/:tokenId")

	gs.POST("/listing", h.listNFT, authMiddleware)
	gs.DELETE("/listing", h.cancelListing, authMiddleware)
	gs.GET("/listing", h.getListing)
	gs.POST("/buy", h.buyNFT, authMiddleware)

	gs.POST("/auction", h.createAuction, authMiddleware)
	gs.GET("/auction", h.getAuction)
	gs.GET("/auction/status", h.checkAuctionStatus)
	gs.POST("/auction/finalize", h.finalizeAuction, authMiddleware)
	gs.POST("/bid", h.placeBid, authMiddleware)

	gs.GET("/ownership", h.verifyOwnership)

	e.GET("/account/:address/balance", h.getBalance)
	e.POST("/account/withdraw", h.withdraw, authMiddleware)
}

func bindTokenId(c echo.Context) (domain.TokenId, error) {
	type params struct {
		TokenId domain.TokenId `param:"tokenId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return 0, err
	}
	return p.TokenId, nil
}

func (h *handler) listNFT(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type payload struct {
		TokenId domain.TokenId `param:"tokenId"`
		Price   domain.Amount  `json:"price" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.ListNFT(ctx, address, p.TokenId, p.Price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) cancelListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	tokenId, err := bindTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.marketplace.CancelListing(ctx, address, tokenId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tokenId, err := bindTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.GetListing(ctx, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) buyNFT(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type payload struct {
		TokenId domain.TokenId `param:"tokenId"`
		Payment domain.Amount  `json:"payment" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.BuyNFT(ctx, address, p.TokenId, p.Payment)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type payload struct {
		TokenId         domain.TokenId `param:"tokenId"`
		StartingBid     domain.Amount  `json:"startingBid" validate:"required"`
		DurationSeconds int64          `json:"durationSeconds" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	duration := time.Duration(p.DurationSeconds) * time.Second

	res, err := h.marketplace.CreateAuction(ctx, address, p.TokenId, p.StartingBid, duration)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type payload struct {
		TokenId domain.TokenId `param:"tokenId"`
		Payment domain.Amount  `json:"payment" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.PlaceBid(ctx, address, p.TokenId, p.Payment)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) finalizeAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	tokenId, err := bindTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.FinalizeAuction(ctx, address, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tokenId, err := bindTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.GetAuction(ctx, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) checkAuctionStatus(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tokenId, err := bindTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.CheckAuctionStatus(ctx, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) verifyOwnership(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		TokenId domain.TokenId `param:"tokenId"`
		Address domain.Address `query:"address"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if len(p.Address) == 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.marketplace.VerifyNFTOwnership(ctx, p.TokenId, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address domain.Address `param:"address"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.GetBalance(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	res, err := h.marketplace.Withdraw(ctx, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
