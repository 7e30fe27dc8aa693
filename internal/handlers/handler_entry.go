package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
	"github.com/mfoukoue/etude_compta_app/internal/middleware"
)

// entryHandler handles HTTP requests for the journal posting engine.
type entryHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newEntryHandler(ps portssvc.PostingSvcFacade) *entryHandler {
	return &entryHandler{postingService: ps}
}

// registerEntryRoutes registers routes related to journal entries.
func registerEntryRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newEntryHandler(postingService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/:id", h.getEntry)
		entries.GET("", h.listEntries)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Post a journal entry
// @Description Validates and atomically persists a balanced journal entry with its lines
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input, unbalanced entry or validation error"
// @Failure 404 {object} map[string]string "Journal or account not found"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, lines, err := h.postingService.CreateEntry(c.Request.Context(), req, actingUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
		}
		return
	}

	logger.Info("Entry posted successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry, lines))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves an entry header with its lines
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, lines, err := h.postingService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry, lines))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entry headers, optionally restricted to a journal code and a date window
// @Tags entries
// @Produce  json
// @Param   journal query string false "Journal code"
// @Param   from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param   to query string false "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {array} dto.EntryHeaderResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := bindDateWindow(c, false)
	if !ok {
		return
	}

	entries, err := h.postingService.ListEntries(c.Request.Context(), c.Query("journal"), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryHeaderResponses(entries))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts the offsetting entry of a previously posted entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID to reverse"
// @Param   reversal body dto.ReverseEntryRequest false "Reversal date, defaults to the original date"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Router /entries/{id}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var asOf domain.Date
	if req.Date != "" {
		parsed, err := domain.ParseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
			return
		}
		asOf = parsed
	}

	entry, lines, err := h.postingService.ReverseEntry(c.Request.Context(), entryID, asOf, actingUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	logger.Info("Entry reversed successfully", slog.String("original_entry_id", entryID), slog.String("reversal_entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry, lines))
}

// bindDateWindow reads the from/to query parameters. When required is true
// both must be present; otherwise empty values stay empty (open bound).
func bindDateWindow(c *gin.Context, required bool) (domain.Date, domain.Date, bool) {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if required && (fromStr == "" || toStr == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return "", "", false
	}

	var from, to domain.Date
	if fromStr != "" {
		parsed, err := domain.ParseDate(fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date: " + err.Error()})
			return "", "", false
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := domain.ParseDate(toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date: " + err.Error()})
			return "", "", false
		}
		to = parsed
	}
	if from != "" && to != "" && to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return "", "", false
	}
	return from, to, true
}
