package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lombard-core/internal/domain/collateral"
	"lombard-core/internal/domain/deal"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// writeDomainError maps domain sentinels onto HTTP codes: missing references
// → 404, pledge/state conflicts → 409, bad input → 400, the rest → 500.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, deal.ErrNotFound),
		errors.Is(err, deal.ErrPauseNotFound),
		errors.Is(err, collateral.ErrLinkNotFound),
		errors.Is(err, collateral.ErrAssetNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, deal.ErrInvalidTransition),
		errors.Is(err, collateral.ErrAssetPledged),
		errors.Is(err, collateral.ErrLinkNotActive),
		errors.Is(err, collateral.ErrInsufficientUnits):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, deal.ErrInvalidPauseRange),
		errors.Is(err, collateral.ErrUnitsRequired):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// today returns the injected wall-clock date for the request. The engine
// itself never samples a clock; everything time-sensitive takes this value.
func today() time.Time { return time.Now().UTC() }
