package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akashduggal/passr-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// respondServiceError maps service sentinels onto the JSON error envelope.
// Schedule validation outcomes never reach this path; they are state, not
// errors.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "session not found"))
	case errors.Is(err, service.ErrNotBuyer),
		errors.Is(err, service.ErrComposeDisabled),
		errors.Is(err, service.ErrScheduleUnavailable):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", err.Error()))
	case errors.Is(err, service.ErrOfferAlreadyAccepted),
		errors.Is(err, service.ErrScheduleNotOpen):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	case errors.Is(err, service.ErrEmptyText),
		errors.Is(err, service.ErrDateOutOfRange):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "unexpected error"))
	}
}
