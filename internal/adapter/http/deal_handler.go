package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainDeal "lombard-core/internal/domain/deal"
	dealuc "lombard-core/internal/usecase/deal"
)

type DealHandler struct{ uc *dealuc.Usecase }

func NewDealHandler(uc *dealuc.Usecase) *DealHandler { return &DealHandler{uc: uc} }

type createDealReq struct {
	Principal         float64 `json:"principal"           validate:"required,gt=0,dec2"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"gte=0,dec4"`
	TermMonths        int     `json:"term_months"         validate:"required,gte=1"`
	// Canonical date `YYYY-MM-DD`
	StartDate    string `json:"start_date"    validate:"required,datetime=2006-01-02"`
	ScheduleType string `json:"schedule_type" validate:"required,schedtype"`
	Currency     string `json:"currency"      validate:"required,min=3,max=8"`
}

func (h *DealHandler) CreateDeal(c echo.Context) error {
	var req createDealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	dto, err := h.uc.Create(c.Request().Context(), dealuc.CreateDealInput{
		Principal:         decimal.NewFromFloat(req.Principal),
		AnnualRatePercent: decimal.NewFromFloat(req.AnnualRatePercent),
		TermMonths:        req.TermMonths,
		StartDate:         start,
		ScheduleType:      domainDeal.ScheduleType(req.ScheduleType),
		Currency:          req.Currency,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DealHandler) GetDeal(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("deal_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) GetSchedule(c echo.Context) error {
	rows, err := h.uc.GetSchedule(c.Request().Context(), c.Param("deal_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"rows": rows})
}

func (h *DealHandler) GetBalances(c echo.Context) error {
	dto, err := h.uc.Balances(c.Request().Context(), c.Param("deal_id"), today())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type pauseReq struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

func (h *DealHandler) PauseDeal(c echo.Context) error {
	var req pauseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	dto, err := h.uc.Pause(c.Request().Context(), c.Param("deal_id"), start, end, today())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DealHandler) ResumeDeal(c echo.Context) error {
	if err := h.uc.Resume(c.Request().Context(), c.Param("pause_id"), today()); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DealHandler) DeletePause(c echo.Context) error {
	if err := h.uc.DeletePause(c.Request().Context(), c.Param("pause_id"), today()); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DealHandler) RegenerateSchedule(c echo.Context) error {
	if err := h.uc.Regenerate(c.Request().Context(), c.Param("deal_id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
