package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/core/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

// MockAccountReader is a mock type for the AccountReader interface
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByPrefix(ctx context.Context, prefix string) ([]domain.Account, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockJournalReader is a mock type for the JournalReader interface
type MockJournalReader struct {
	mock.Mock
}

func (m *MockJournalReader) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalReader) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalReader) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

// MockEntryRepository is a mock type for the EntryRepositoryFacade interface
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.AccountEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByIDs(ctx context.Context, entryIDs []string) (map[string]domain.JournalEntry, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, journalID string, from, to domain.Date) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, journalID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListLinesByAccountCodes(ctx context.Context, codes []string) ([]domain.AccountEntry, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PostingServiceTestSuite struct {
	suite.Suite
	mockAccounts *MockAccountReader
	mockJournals *MockJournalReader
	mockEntries  *MockEntryRepository
	service      portssvc.PostingSvcFacade
	journal      domain.Journal
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountReader)
	suite.mockJournals = new(MockJournalReader)
	suite.mockEntries = new(MockEntryRepository)
	suite.service = services.NewPostingService(suite.mockAccounts, suite.mockJournals, suite.mockEntries)
	suite.journal = domain.Journal{
		JournalID: uuid.NewString(),
		Code:      "BQ1",
		Label:     "Banque principale",
		Type:      domain.JournalBanque,
		IsActive:  true,
	}
}

func postableAccount(code string) domain.Account {
	return domain.Account{
		Code:      code,
		Label:     "Compte " + code,
		ClassCode: domain.ClassOf(code),
		Type:      domain.TypeForCode(code),
		Nature:    domain.NatureForClass(domain.ClassOf(code)),
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "2024-03-15",
		Label:       "Encaissement client",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000", Debit: decimal.NewFromInt(150000)},
			{AccountCode: "411000", Credit: decimal.NewFromInt(150000)},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "BQ1").Return(&suite.journal, nil).Once()
	suite.mockAccounts.On("FindAccountsByCodes", ctx, []string{"512000", "411000"}).Return(map[string]domain.Account{
		"512000": postableAccount("512000"),
		"411000": postableAccount("411000"),
	}, nil).Once()
	suite.mockEntries.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.AccountEntry")).Return(nil).Once()

	entry, lines, err := suite.service.CreateEntry(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.journal.JournalID, entry.JournalID)
	suite.Equal(domain.Date("2024-03-15"), entry.Date)
	suite.Equal(userID, entry.CreatedBy)
	suite.WithinDuration(time.Now(), entry.CreatedAt, time.Second)
	suite.Require().Len(lines, 2)
	suite.Equal(entry.EntryID, lines[0].EntryID)
	suite.Equal(entry.EntryID, lines[1].EntryID)
	suite.mockEntries.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateEntry_UnbalancedRejectedBeforeWrite() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "2024-03-15",
		Label:       "Ecriture bancale",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000", Debit: decimal.NewFromInt(10000)},
			{AccountCode: "411000", Credit: decimal.NewFromInt(9000)},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "BQ1").Return(&suite.journal, nil).Once()

	entry, lines, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.Contains(err.Error(), "imbalance of 1000")
	suite.Nil(entry)
	suite.Nil(lines)
	suite.mockEntries.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateEntry_LineWithBothSidesRejected() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "2024-03-15",
		Label:       "Ligne invalide",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000", Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(500)},
			{AccountCode: "411000", Credit: decimal.NewFromInt(500)},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "BQ1").Return(&suite.journal, nil).Once()

	_, _, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineBothSides)
	suite.mockEntries.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateEntry_NonIntegerAmountRejected() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "2024-03-15",
		Label:       "Montant fractionnaire",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000", Debit: decimal.RequireFromString("100.50")},
			{AccountCode: "411000", Credit: decimal.RequireFromString("100.50")},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "BQ1").Return(&suite.journal, nil).Once()

	_, _, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineNotInteger)
	suite.mockEntries.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateEntry_EmptyLineRejected() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "2024-03-15",
		Label:       "Ligne vide",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000"},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "BQ1").Return(&suite.journal, nil).Once()

	_, _, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineNoAmount)
}

func (suite *PostingServiceTestSuite) TestCreateEntry_UnknownAccountRejected() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "2024-03-15",
		Label:       "Compte inconnu",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "999999", Credit: decimal.NewFromInt(1000)},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "BQ1").Return(&suite.journal, nil).Once()
	suite.mockAccounts.On("FindAccountsByCodes", ctx, []string{"512000", "999999"}).Return(map[string]domain.Account{
		"512000": postableAccount("512000"),
	}, nil).Once()

	_, _, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "999999")
	suite.mockEntries.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateEntry_SummaryAccountRejected() {
	ctx := context.Background()
	summary := postableAccount("410000")
	summary.IsSummary = true
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "2024-03-15",
		Label:       "Compte collectif",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "410000", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "512000", Credit: decimal.NewFromInt(1000)},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "BQ1").Return(&suite.journal, nil).Once()
	suite.mockAccounts.On("FindAccountsByCodes", ctx, []string{"410000", "512000"}).Return(map[string]domain.Account{
		"410000": summary,
		"512000": postableAccount("512000"),
	}, nil).Once()

	_, _, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotPosting)
}

func (suite *PostingServiceTestSuite) TestCreateEntry_UnknownJournal() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		JournalCode: "XX9",
		Date:        "2024-03-15",
		Label:       "Journal inconnu",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "411000", Credit: decimal.NewFromInt(1000)},
		},
	}

	suite.mockJournals.On("FindJournalByCode", ctx, "XX9").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestCreateEntry_InvalidDate() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		JournalCode: "BQ1",
		Date:        "15/03/2024",
		Label:       "Mauvais format de date",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "512000", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "411000", Credit: decimal.NewFromInt(1000)},
		},
	}

	_, _, err := suite.service.CreateEntry(ctx, req, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestReverseEntry_SwapsSides() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := domain.JournalEntry{
		EntryID:   originalID,
		JournalID: suite.journal.JournalID,
		Date:      "2024-03-15",
		Label:     "Encaissement client",
	}
	originalLines := []domain.AccountEntry{
		{LineID: uuid.NewString(), EntryID: originalID, AccountCode: "512000", Debit: decimal.NewFromInt(150000), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: originalID, AccountCode: "411000", Debit: decimal.Zero, Credit: decimal.NewFromInt(150000)},
	}

	suite.mockEntries.On("FindEntryByID", ctx, originalID).Return(&original, nil).Once()
	suite.mockEntries.On("FindLinesByEntryID", ctx, originalID).Return(originalLines, nil).Once()
	suite.mockEntries.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.AccountEntry")).Return(nil).Once()

	reversal, lines, err := suite.service.ReverseEntry(ctx, originalID, "", "user")

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.NotEqual(originalID, reversal.EntryID)
	suite.Equal(original.Date, reversal.Date)
	suite.Equal("EXTOURNE - Encaissement client", reversal.Label)
	suite.Equal(originalID, reversal.Reference)
	suite.Require().Len(lines, 2)
	suite.True(lines[0].Credit.Equal(decimal.NewFromInt(150000)))
	suite.True(lines[0].Debit.IsZero())
	suite.True(lines[1].Debit.Equal(decimal.NewFromInt(150000)))
	suite.True(lines[1].Credit.IsZero())
	suite.mockEntries.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestReverseEntry_ExplicitDate() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := domain.JournalEntry{EntryID: originalID, JournalID: suite.journal.JournalID, Date: "2024-03-15", Label: "A corriger"}
	originalLines := []domain.AccountEntry{
		{LineID: uuid.NewString(), EntryID: originalID, AccountCode: "512000", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: originalID, AccountCode: "411000", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}

	suite.mockEntries.On("FindEntryByID", ctx, originalID).Return(&original, nil).Once()
	suite.mockEntries.On("FindLinesByEntryID", ctx, originalID).Return(originalLines, nil).Once()
	suite.mockEntries.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.AccountEntry")).Return(nil).Once()

	reversal, _, err := suite.service.ReverseEntry(ctx, originalID, "2024-04-01", "user")

	suite.Require().NoError(err)
	suite.Equal(domain.Date("2024-04-01"), reversal.Date)
}

func (suite *PostingServiceTestSuite) TestReverseEntry_NotFound() {
	ctx := context.Background()
	suite.mockEntries.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.ReverseEntry(ctx, "missing", "", "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
