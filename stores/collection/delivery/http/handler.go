package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/collection"
	"github.com/mintmarket/goapi/middleware"
)

type handler struct {
	collection collection.Usecase
}

// New inits collection handlers
func New(e *echo.Echo, authMiddleware echo.MiddlewareFunc, collection collection.Usecase) {
	h := &handler{collection}

	gs := e.Group("/collections")

	gs.GET("", h.getCollections, middleware.CacheHttp(30*time.Second))
	gs.POST("", h.createCollection, authMiddleware)

	e.GET("/collection/:collectionId", h.getCollection)
	e.GET("/account/:address/collections", h.getCreatorCollections)
}

func (h *handler) createCollection(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := collection.CreatePayload{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p.Creator = address

	res, err := h.collection.Create(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) getCollections(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Creator domain.Address `query:"creator"`
		Offset  int32          `query:"offset"`
		Limit   int32          `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []collection.FindAllOptions{}
	if len(p.Creator) > 0 {
		opts = append(opts, collection.WithCreator(p.Creator))
	}
	if p.Limit > 0 {
		opts = append(opts, collection.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.collection.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCollection(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.collection.FindOne(ctx, p.CollectionId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCreatorCollections(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address domain.Address `param:"address"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.collection.GetCreatorCollections(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
