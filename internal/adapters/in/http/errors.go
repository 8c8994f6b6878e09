package http

import (
	"errors"
	"net/http"

	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors onto HTTP status codes. Ownership
// failures surface as not-found, so callers cannot probe foreign orders.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err)

	case errors.Is(err, errs.ErrVersionIsInvalid):
		return respond(ctx, http.StatusConflict, err)

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err)

	case errors.Is(err, order.ErrOrderIsClosed),
		errors.Is(err, order.ErrOrderIsNotClosed),
		errors.Is(err, order.ErrOrderIsAlreadyRated),
		errors.Is(err, order.ErrOrderNotAssignedToDriver):
		return respond(ctx, http.StatusBadRequest, err)

	case errors.Is(err, ports.ErrUpstreamUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Code:    http.StatusServiceUnavailable,
			Message: "Upstream service unavailable",
		})

	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func respond(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
