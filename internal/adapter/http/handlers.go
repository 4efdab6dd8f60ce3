package http

import (
	"net/http"
	"time"

	"agricredit-backend/pkg/clock"

	"github.com/labstack/echo/v4"
)

type Handler struct{ clock clock.Clock }

func NewHandler(clk clock.Clock) *Handler {
	if clk == nil {
		clk = clock.System()
	}
	return &Handler{clock: clk}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   h.clock.Now().UTC().Format(time.RFC3339Nano),
	})
}
