package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sljivkov/collateral-oracle/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var (
	errBadRequest       = errors.New("bad request")
	errInvalidSignature = errors.New("invalid signature")
	errStaleRequest     = errors.New("stale request")
)

// MakeJsonResp writes data in the response envelope. Errors are mapped to
// the status of their kind.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = statusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
}

func statusOf(err error, fallback int) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errInvalidSignature), errors.Is(err, errStaleRequest):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrFeedNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFeedRead):
		return http.StatusBadGateway
	}

	return fallback
}
