package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/mfoukoue/etude_compta_app/internal/adapters/database/memory"
	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/core/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = services.NewJournalService(suite.store)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()

	created, err := suite.service.CreateJournal(ctx, dto.CreateJournalRequest{
		Code:  "BQ1",
		Label: "Banque principale",
		Type:  "BANQUE",
	}, "user")

	suite.Require().NoError(err)
	suite.NotEmpty(created.JournalID)
	suite.Equal(domain.JournalBanque, created.Type)
	suite.True(created.IsActive)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DuplicateCodeConflicts() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Code: "VE", Label: "Ventes", Type: "VENTES"}

	_, err := suite.service.CreateJournal(ctx, req, "user")
	suite.Require().NoError(err)

	_, err = suite.service.CreateJournal(ctx, req, "user")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_Deactivate() {
	ctx := context.Background()
	_, err := suite.service.CreateJournal(ctx, dto.CreateJournalRequest{Code: "CA", Label: "Caisse", Type: "CAISSE"}, "user")
	suite.Require().NoError(err)

	inactive := false
	updated, err := suite.service.UpdateJournal(ctx, "CA", dto.UpdateJournalRequest{IsActive: &inactive}, "user")

	suite.Require().NoError(err)
	suite.False(updated.IsActive)

	fetched, err := suite.service.GetJournalByCode(ctx, "CA")
	suite.Require().NoError(err)
	suite.False(fetched.IsActive)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_BlockedByEntries() {
	ctx := context.Background()
	container := services.NewServiceContainer(suite.store.Repositories())

	_, err := container.Journal.CreateJournal(ctx, dto.CreateJournalRequest{Code: "OD", Label: "Opérations diverses", Type: "OPERATIONS"}, "user")
	suite.Require().NoError(err)
	_, err = container.Account.CreateAccount(ctx, dto.CreateAccountRequest{Code: "411000", Label: "Clients"}, "user")
	suite.Require().NoError(err)
	_, err = container.Account.CreateAccount(ctx, dto.CreateAccountRequest{Code: "701000", Label: "Ventes"}, "user")
	suite.Require().NoError(err)

	_, _, err = container.Posting.CreateEntry(ctx, dto.CreateEntryRequest{
		JournalCode: "OD",
		Date:        "2024-01-15",
		Label:       "Facture",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "411000", Debit: decimal.NewFromInt(5000)},
			{AccountCode: "701000", Credit: decimal.NewFromInt(5000)},
		},
	}, "user")
	suite.Require().NoError(err)

	err = container.Journal.DeleteJournal(ctx, "OD")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_NotFound() {
	err := suite.service.DeleteJournal(context.Background(), "XX")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListJournals_SortedByCode() {
	ctx := context.Background()
	for _, j := range []dto.CreateJournalRequest{
		{Code: "VE", Label: "Ventes", Type: "VENTES"},
		{Code: "AC", Label: "Achats", Type: "ACHATS"},
		{Code: "BQ1", Label: "Banque", Type: "BANQUE"},
	} {
		_, err := suite.service.CreateJournal(ctx, j, "user")
		suite.Require().NoError(err)
	}

	journals, err := suite.service.ListJournals(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(journals, 3)
	suite.Equal("AC", journals[0].Code)
	suite.Equal("BQ1", journals[1].Code)
	suite.Equal("VE", journals[2].Code)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
