package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/dto"
	"github.com/jmkang/household_ledger_app/internal/middleware"
)

// entryHandler handles HTTP requests related to ledger entries.
type entryHandler struct {
	postingSvc portssvc.PostingSvcFacade
	summarySvc portssvc.SummarySvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(postingSvc portssvc.PostingSvcFacade, summarySvc portssvc.SummarySvcFacade) *entryHandler {
	return &entryHandler{
		postingSvc: postingSvc,
		summarySvc: summarySvc,
	}
}

// parsePeriod reads the :year/:month path params into a Period.
func parsePeriod(c *gin.Context) (domain.Period, bool) {
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	if errY != nil || errM != nil || year < 1 || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year/month in path"})
		return domain.Period{}, false
	}
	return domain.Period{Year: year, Month: month}, true
}

// parseDay reads the :day path param.
func parseDay(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 || day > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day in path"})
		return 0, false
	}
	return day, true
}

// postEntry creates the entries for a purchase or income in the period.
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	origin, ok := parsePeriod(c)
	if !ok {
		return
	}

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.postingSvc.Post(c.Request.Context(), origin, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPartialWrite):
			// Some writes landed; report what did along with the failure so
			// the caller can retry manually.
			logger.Error("Partial write posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusMultiStatus, gin.H{
				"error":   err.Error(),
				"entries": dto.ToEntryResponses(created),
			})
		case errors.Is(err, apperrors.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
		default:
			logger.Error("Failed to post entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PostEntriesResponse{Entries: dto.ToEntryResponses(created)})
}

// editEntry updates one existing entry.
func (h *entryHandler) editEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, ok := parsePeriod(c)
	if !ok {
		return
	}
	day, ok := parseDay(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for editEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.postingSvc.Edit(c.Request.Context(), period, day, entryID, req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error editing entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
		default:
			logger.Error("Failed to edit entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteEntry removes exactly one entry.
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, ok := parsePeriod(c)
	if !ok {
		return
	}
	day, ok := parseDay(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	if err := h.postingSvc.Delete(c.Request.Context(), period, day, entryID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
		default:
			logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listMonth returns the period's entries in display order.
func (h *entryHandler) listMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	snapshot, err := h.summarySvc.MonthSnapshot(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
			return
		}
		logger.Error("Failed to list period", slog.String("error", err.Error()), slog.String("period", period.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthListingResponse(period, snapshot, domain.EffectiveDay(time.Now())))
}

// registerEntryRoutes registers the entry CRUD and listing routes.
func registerEntryRoutes(group *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade, summarySvc portssvc.SummarySvcFacade) {
	h := newEntryHandler(postingSvc, summarySvc)

	periods := group.Group("/periods/:year/:month")
	{
		periods.GET("/entries", h.listMonth)
		periods.POST("/entries", h.postEntry)
		periods.PUT("/days/:day/entries/:entryID", h.editEntry)
		periods.DELETE("/days/:day/entries/:entryID", h.deleteEntry)
	}
}
