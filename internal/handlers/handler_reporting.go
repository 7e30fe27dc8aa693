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

// reportingHandler handles HTTP requests for the statement generators.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes for the four statements.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance", h.trialBalance)
		reports.GET("/bilan", h.bilan)
		reports.GET("/compte-resultat", h.compteResultat)
		reports.GET("/grand-livre", h.grandLivre)
	}
}

// trialBalance godoc
// @Summary Generate the trial balance
// @Description Per-account opening, movement and closing columns over a period
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param   to query string true "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Router /reports/balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := bindDateWindow(c, true)
	if !ok {
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, from, to))
}

// bilan godoc
// @Summary Generate the Bilan
// @Description Balance sheet as of a date, cumulative from inception
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Reference date (YYYY-MM-DD)"
// @Success 200 {object} domain.Bilan
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to generate bilan"
// @Router /reports/bilan [get]
func (h *reportingHandler) bilan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := domain.ParseDate(c.Query("asOf"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date: " + err.Error()})
		return
	}

	bilan, err := h.reportingService.Bilan(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to generate bilan", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate bilan"})
		return
	}

	c.JSON(http.StatusOK, bilan)
}

// compteResultat godoc
// @Summary Generate the Compte de Résultat
// @Description Income statement over a period with exploitation, financier and HAO cascades
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param   to query string true "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} domain.IncomeStatement
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Failed to generate income statement"
// @Router /reports/compte-resultat [get]
func (h *reportingHandler) compteResultat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := bindDateWindow(c, true)
	if !ok {
		return
	}

	statement, err := h.reportingService.CompteResultat(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to generate income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate income statement"})
		return
	}

	c.JSON(http.StatusOK, statement)
}

// grandLivre godoc
// @Summary Generate the Grand Livre
// @Description Per-account chronological movements over a period, optionally restricted to an account code range
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param   to query string true "End date (YYYY-MM-DD, inclusive)"
// @Param   fromAccount query string false "Lower account code bound (inclusive)"
// @Param   toAccount query string false "Upper account code bound (inclusive)"
// @Success 200 {object} dto.GrandLivreResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 404 {object} map[string]string "Referenced journal missing"
// @Failure 500 {object} map[string]string "Failed to generate general ledger"
// @Router /reports/grand-livre [get]
func (h *reportingHandler) grandLivre(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := bindDateWindow(c, true)
	if !ok {
		return
	}

	accounts, err := h.reportingService.GrandLivre(c.Request.Context(), from, to, c.Query("fromAccount"), c.Query("toAccount"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate general ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate general ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGrandLivreResponse(accounts, from, to))
}
