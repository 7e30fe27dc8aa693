package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/mfoukoue/etude_compta_app/internal/adapters/database/memory"
	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/core/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = services.NewAccountService(suite.store)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsFromClass() {
	ctx := context.Background()

	created, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:  "701000",
		Label: "Prestations notariales",
	}, "user")

	suite.Require().NoError(err)
	suite.Equal("7", created.ClassCode)
	suite.Equal(domain.Revenue, created.Type)
	suite.Equal(domain.NatureCredit, created.Nature)
	suite.True(created.IsActive)
	suite.Equal("user", created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DebitNatureForAssetClasses() {
	ctx := context.Background()

	created, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:  "512000",
		Label: "Banque",
	}, "user")

	suite.Require().NoError(err)
	suite.Equal(domain.NatureDebit, created.Nature)
	suite.Equal(domain.Asset, created.Type)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidClassRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:  "012000",
		Label: "Classe inconnue",
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCodeConflicts() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "411000", Label: "Clients"}

	_, err := suite.service.CreateAccount(ctx, req, "user")
	suite.Require().NoError(err)

	_, err = suite.service.CreateAccount(ctx, req, "user")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingParentRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:       "411100",
		Label:      "Clients locaux",
		ParentCode: "411000",
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialFields() {
	ctx := context.Background()
	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "411000", Label: "Clients"}, "user")
	suite.Require().NoError(err)

	newLabel := "Clients et comptes rattachés"
	inactive := false
	updated, err := suite.service.UpdateAccount(ctx, "411000", dto.UpdateAccountRequest{
		Label:    &newLabel,
		IsActive: &inactive,
	}, "editor")

	suite.Require().NoError(err)
	suite.Equal(newLabel, updated.Label)
	suite.False(updated.IsActive)
	suite.Equal(domain.Asset, updated.Type)
	suite.Equal("editor", updated.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByPostedLines() {
	ctx := context.Background()
	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "411000", Label: "Clients"}, "user")
	suite.Require().NoError(err)
	_, err = suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "701000", Label: "Ventes"}, "user")
	suite.Require().NoError(err)

	journal := domain.Journal{JournalID: "j1", Code: "VE", Label: "Ventes", Type: domain.JournalVentes, IsActive: true}
	suite.Require().NoError(suite.store.SaveJournal(ctx, journal))

	container := services.NewServiceContainer(suite.store.Repositories())
	_, _, err = container.Posting.CreateEntry(ctx, dto.CreateEntryRequest{
		JournalCode: "VE",
		Date:        "2024-03-01",
		Label:       "Facture",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "411000", Debit: decimal.NewFromInt(10000)},
			{AccountCode: "701000", Credit: decimal.NewFromInt(10000)},
		},
	}, "user")
	suite.Require().NoError(err)

	err = suite.service.DeleteAccount(ctx, "411000")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	err := suite.service.DeleteAccount(context.Background(), "999999")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_PrefixFilter() {
	ctx := context.Background()
	for _, code := range []string{"411000", "411100", "512000"} {
		_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: code, Label: "Compte " + code}, "user")
		suite.Require().NoError(err)
	}

	accounts, err := suite.service.ListAccounts(ctx, "41")
	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)
	suite.Equal("411000", accounts[0].Code)
	suite.Equal("411100", accounts[1].Code)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
