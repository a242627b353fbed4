package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/dto"
	"github.com/jmkang/household_ledger_app/internal/middleware"
)

// fixedExpenseHandler handles HTTP requests for fixed-expense application.
type fixedExpenseHandler struct {
	fixedSvc portssvc.FixedExpenseSvcFacade
}

// newFixedExpenseHandler creates a new fixedExpenseHandler.
func newFixedExpenseHandler(fixedSvc portssvc.FixedExpenseSvcFacade) *fixedExpenseHandler {
	return &fixedExpenseHandler{fixedSvc: fixedSvc}
}

// applyFixed replaces the period's fixed-expense entries with the current
// recurring list. Safe to call repeatedly.
func (h *fixedExpenseHandler) applyFixed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	applied, err := h.fixedSvc.ApplyFixed(c.Request.Context(), period)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Nothing to apply", slog.String("period", period.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recurring expense list or ledger store unavailable"})
		default:
			logger.Error("Failed to apply fixed expenses", slog.String("error", err.Error()), slog.String("period", period.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply fixed expenses"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ApplyFixedResponse{Period: period.String(), Applied: applied})
}

// registerFixedExpenseRoutes registers the fixed-expense routes.
func registerFixedExpenseRoutes(group *gin.RouterGroup, fixedSvc portssvc.FixedExpenseSvcFacade) {
	h := newFixedExpenseHandler(fixedSvc)
	group.POST("/periods/:year/:month/fixed-expenses/apply", h.applyFixed)
}
