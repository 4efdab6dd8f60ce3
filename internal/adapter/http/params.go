package http

import (
	"fmt"
	"strconv"

	"agricredit-backend/internal/domain/errs"

	"github.com/labstack/echo/v4"
)

func idParam(c echo.Context, name string) (uint64, error) {
	return parseID(name, c.Param(name))
}

func parseID(name, raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errs.ErrValidation, name)
	}
	return id, nil
}
