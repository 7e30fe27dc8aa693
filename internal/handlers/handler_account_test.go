package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/mfoukoue/etude_compta_app/internal/adapters/database/memory"
	"github.com/mfoukoue/etude_compta_app/internal/core/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
	"github.com/mfoukoue/etude_compta_app/internal/handlers"
	"github.com/mfoukoue/etude_compta_app/internal/middleware"
	"github.com/mfoukoue/etude_compta_app/pkg/config"
)

// HandlerTestSuite drives the HTTP surface end to end against the in-memory
// store: real router, real services, no mocks.
type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	container := services.NewServiceContainer(store.Repositories())

	suite.router = gin.New()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	suite.router.Use(middleware.RequestLogging(logger), gin.Recovery())

	cfg := &config.Config{IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *HandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlerTestSuite) TestHealth() {
	rec := suite.perform(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("OK", rec.Body.String())
}

func (suite *HandlerTestSuite) TestCreateAccountAndFetch() {
	rec := suite.perform(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code:  "411000",
		Label: "Clients",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	suite.Equal("411000", created.Code)
	suite.Equal("4", created.ClassCode)
	suite.Equal("DEBIT", created.Nature)
	suite.True(created.IsActive)

	rec = suite.perform(http.MethodGet, "/api/v1/accounts/411000", nil)
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HandlerTestSuite) TestCreateAccountDuplicateConflicts() {
	body := dto.CreateAccountRequest{Code: "411000", Label: "Clients"}

	rec := suite.perform(http.MethodPost, "/api/v1/accounts", body)
	suite.Require().Equal(http.StatusCreated, rec.Code)

	rec = suite.perform(http.MethodPost, "/api/v1/accounts", body)
	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *HandlerTestSuite) TestCreateAccountValidation() {
	rec := suite.perform(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "ABC", "label": "Code non numérique",
	})
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlerTestSuite) TestGetAccountNotFound() {
	rec := suite.perform(http.MethodGet, "/api/v1/accounts/999999", nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestPostUnbalancedEntryRejected() {
	suite.Require().Equal(http.StatusCreated, suite.perform(http.MethodPost, "/api/v1/journals", dto.CreateJournalRequest{
		Code: "BQ1", Label: "Banque", Type: "BANQUE",
	}).Code)
	suite.Require().Equal(http.StatusCreated, suite.perform(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code: "512000", Label: "Banque",
	}).Code)
	suite.Require().Equal(http.StatusCreated, suite.perform(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code: "411000", Label: "Clients",
	}).Code)

	rec := suite.perform(http.MethodPost, "/api/v1/entries", map[string]any{
		"journalCode": "BQ1",
		"date":        "2024-03-15",
		"label":       "Ecriture bancale",
		"lines": []map[string]any{
			{"accountCode": "512000", "debit": "10000"},
			{"accountCode": "411000", "credit": "9000"},
		},
	})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "imbalance of 1000")
}

func (suite *HandlerTestSuite) TestPostEntryAndTrialBalance() {
	suite.Require().Equal(http.StatusCreated, suite.perform(http.MethodPost, "/api/v1/journals", dto.CreateJournalRequest{
		Code: "BQ1", Label: "Banque", Type: "BANQUE",
	}).Code)
	for _, a := range []dto.CreateAccountRequest{
		{Code: "512000", Label: "Banque"},
		{Code: "701000", Label: "Prestations"},
	} {
		suite.Require().Equal(http.StatusCreated, suite.perform(http.MethodPost, "/api/v1/accounts", a).Code)
	}

	rec := suite.perform(http.MethodPost, "/api/v1/entries", map[string]any{
		"journalCode": "BQ1",
		"date":        "2024-03-15",
		"label":       "Encaissement",
		"lines": []map[string]any{
			{"accountCode": "512000", "debit": "25000"},
			{"accountCode": "701000", "credit": "25000"},
		},
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.perform(http.MethodGet, "/api/v1/reports/balance?from=2024-01-01&to=2024-12-31", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var balance dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &balance))
	suite.Len(balance.Rows, 2)
	suite.True(balance.Totals.Debit.Equal(balance.Totals.Credit))
}

func (suite *HandlerTestSuite) TestTrialBalanceRequiresWindow() {
	rec := suite.perform(http.MethodGet, "/api/v1/reports/balance?from=2024-01-01", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
