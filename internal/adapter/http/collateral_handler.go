package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	coluc "lombard-core/internal/usecase/collateral"
)

type CollateralHandler struct{ uc *coluc.Usecase }

func NewCollateralHandler(uc *coluc.Usecase) *CollateralHandler { return &CollateralHandler{uc: uc} }

type pledgeReq struct {
	AssetID      string   `json:"asset_id"      validate:"required,hex32"`
	PledgedUnits *float64 `json:"pledged_units" validate:"omitempty,gt=0,dec4"`
}

func unitsOf(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func (h *CollateralHandler) Pledge(c echo.Context) error {
	var req pledgeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Pledge(c.Request().Context(), coluc.PledgeInput{
		DealID:       c.Param("deal_id"),
		AssetID:      req.AssetID,
		PledgedUnits: unitsOf(req.PledgedUnits),
	}, today())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CollateralHandler) GetLink(c echo.Context) error {
	dto, err := h.uc.GetLink(c.Request().Context(), c.Param("link_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CollateralHandler) Evaluate(c echo.Context) error {
	dto, err := h.uc.Evaluate(c.Request().Context(), c.Param("link_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type replaceReq struct {
	NewAssetID   string   `json:"new_asset_id"  validate:"required,hex32"`
	PledgedUnits *float64 `json:"pledged_units" validate:"omitempty,gt=0,dec4"`
	Reason       string   `json:"reason"        validate:"max=255"`
}

func (h *CollateralHandler) Replace(c echo.Context) error {
	var req replaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Replace(c.Request().Context(), coluc.ReplaceInput{
		LinkID:       c.Param("link_id"),
		NewAssetID:   req.NewAssetID,
		PledgedUnits: unitsOf(req.PledgedUnits),
		Reason:       req.Reason,
	}, today())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CollateralHandler) Release(c echo.Context) error {
	if err := h.uc.Release(c.Request().Context(), c.Param("link_id"), today()); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CollateralHandler) DefaultDeal(c echo.Context) error {
	dto, err := h.uc.Default(c.Request().Context(), c.Param("deal_id"), today())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CollateralHandler) GetChain(c echo.Context) error {
	recs, err := h.uc.Chain(c.Request().Context(), c.Param("deal_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"records": recs})
}
