package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/dto"
	"github.com/jmkang/household_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for period summaries, installment
// progress and card usage dashboards.
type reportingHandler struct {
	summarySvc   portssvc.SummarySvcFacade
	cardUsageSvc portssvc.CardUsageSvcFacade
	cardGoals    map[string]decimal.Decimal
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(summarySvc portssvc.SummarySvcFacade, cardUsageSvc portssvc.CardUsageSvcFacade, cardGoals map[string]decimal.Decimal) *reportingHandler {
	return &reportingHandler{
		summarySvc:   summarySvc,
		cardUsageSvc: cardUsageSvc,
		cardGoals:    cardGoals,
	}
}

// getSummary returns the full dashboard figures for a period.
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	summary, err := h.summarySvc.PeriodSummary(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
			return
		}
		logger.Error("Failed to compute period summary", slog.String("error", err.Error()), slog.String("period", period.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute period summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(summary))
}

// getCardUsage returns usage against goals for every configured card.
func (h *reportingHandler) getCardUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	usages, err := h.cardUsageSvc.CardUsage(c.Request.Context(), period, h.cardGoals)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
			return
		}
		logger.Error("Failed to compute card usage", slog.String("error", err.Error()), slog.String("period", period.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute card usage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": dto.ToCardUsageResponses(usages)})
}

// getInstallments returns the installment occurrences billing in the period.
func (h *reportingHandler) getInstallments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	rows, err := h.summarySvc.ListInstallments(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
			return
		}
		logger.Error("Failed to list installments", slog.String("error", err.Error()), slog.String("period", period.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list installments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"installments": dto.ToInstallmentProgressResponses(rows)})
}

// registerReportingRoutes registers the summary and dashboard routes.
func registerReportingRoutes(group *gin.RouterGroup, summarySvc portssvc.SummarySvcFacade, cardUsageSvc portssvc.CardUsageSvcFacade, cardGoals map[string]decimal.Decimal) {
	h := newReportingHandler(summarySvc, cardUsageSvc, cardGoals)

	periods := group.Group("/periods/:year/:month")
	{
		periods.GET("/summary", h.getSummary)
		periods.GET("/card-usage", h.getCardUsage)
		periods.GET("/installments", h.getInstallments)
	}
}
