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

// reconciliationHandler handles HTTP requests for bank statement matching.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers routes related to reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliation := rg.Group("/reconciliation")
	{
		reconciliation.POST("/:accountCode/automatch", h.autoMatch)
	}
}

// autoMatch godoc
// @Summary Run automatic bank reconciliation
// @Description Pairs imported statement lines one-to-one against journal entries touching the account
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   accountCode path string true "Bank account code"
// @Param   statement body dto.AutoMatchRequest true "Statement lines and matching window"
// @Success 200 {object} domain.ReconciliationResult
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to run reconciliation"
// @Router /reconciliation/{accountCode}/automatch [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountCode := c.Param("accountCode")

	var req dto.AutoMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AutoMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	from, err := domain.ParseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date: " + err.Error()})
		return
	}
	to, err := domain.ParseDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date: " + err.Error()})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	lines, err := req.ToStatementLines()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reconciliationService.AutoMatch(c.Request.Context(), accountCode, from, to, lines)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to run reconciliation", slog.String("account_code", accountCode), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run reconciliation"})
		}
		return
	}

	logger.Info("Reconciliation run completed",
		slog.String("account_code", accountCode),
		slog.Int("matched", len(result.Matched)),
		slog.Int("unmatched_statement", len(result.UnmatchedStatement)),
		slog.Int("unmatched_entries", len(result.UnmatchedEntries)),
	)
	c.JSON(http.StatusOK, result)
}
