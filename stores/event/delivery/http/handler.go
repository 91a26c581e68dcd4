package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/event"
)

type handler struct {
	event event.Usecase
}

// New inits the ledger read endpoint
func New(e *echo.Echo, event event.Usecase) {
	h := &handler{event}

	e.GET("/events", h.getEvents)
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		TokenId domain.TokenId `query:"tokenId"`
		Type    string         `query:"type"`
		Offset  int32          `query:"offset"`
		Limit   int32          `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []event.FindAllOptions{}
	if p.TokenId > 0 {
		opts = append(opts, event.WithTokenId(p.TokenId))
	}
	if len(p.Type) > 0 {
		opts = append(opts, event.WithType(event.Type(p.Type)))
	}
	if p.Limit > 0 {
		opts = append(opts, event.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.event.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
