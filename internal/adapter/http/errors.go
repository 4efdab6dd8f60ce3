package http

import (
	"errors"
	"net/http"

	"agricredit-backend/internal/domain/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf maps a domain error kind to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Unexpected errors are logged
// and hidden from the client.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.JSON(code, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

// bindAndValidate returns a response already written when ok is false.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	return validated(c, req)
}

// validated is bindAndValidate for requests assembled from path or query.
func validated(c echo.Context, req any) (ok bool, err error) {
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
