package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/mfoukoue/etude_compta_app/internal/adapters/database/memory"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/core/services"
)

type BalanceCalculatorTestSuite struct {
	suite.Suite
	store      *memory.Store
	calculator portssvc.BalanceSvcFacade
}

func (suite *BalanceCalculatorTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.calculator = services.NewBalanceCalculator(suite.store)
}

// postBalanced writes a two-line balanced entry straight into the store.
func (suite *BalanceCalculatorTestSuite) postBalanced(date domain.Date, debitAccount, creditAccount string, amount int64) string {
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:   entryID,
		JournalID: "J1",
		Date:      date,
		Label:     "test entry",
	}
	lines := []domain.AccountEntry{
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: debitAccount, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: creditAccount, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)},
	}
	suite.Require().NoError(suite.store.SaveEntry(context.Background(), entry, lines))
	return entryID
}

func (suite *BalanceCalculatorTestSuite) TestComputeBalances_PartitionsByEntryDate() {
	ctx := context.Background()

	// History of account 411000: 100000 debit before the window, 50000 debit
	// on the window start, 20000 credit inside, 99999 debit after the end.
	suite.postBalanced("2023-12-10", "411000", "701000", 100000)
	suite.postBalanced("2024-01-01", "411000", "701000", 50000)
	suite.postBalanced("2024-02-15", "512000", "411000", 20000)
	suite.postBalanced("2024-04-01", "411000", "701000", 99999)

	totals, err := suite.calculator.ComputeBalances(ctx, []string{"411000"}, "2024-01-01", "2024-03-31")

	suite.Require().NoError(err)
	t := totals["411000"]
	suite.True(t.DebitOpening.Equal(decimal.NewFromInt(100000)), "opening debit, got %s", t.DebitOpening)
	suite.True(t.CreditOpening.IsZero())
	suite.True(t.DebitMovement.Equal(decimal.NewFromInt(50000)), "movement debit, got %s", t.DebitMovement)
	suite.True(t.CreditMovement.Equal(decimal.NewFromInt(20000)), "movement credit, got %s", t.CreditMovement)
}

func (suite *BalanceCalculatorTestSuite) TestComputeBalances_WindowEndInclusive() {
	ctx := context.Background()
	suite.postBalanced("2024-03-31", "411000", "701000", 777)

	totals, err := suite.calculator.ComputeBalances(ctx, []string{"411000"}, "2024-01-01", "2024-03-31")

	suite.Require().NoError(err)
	suite.True(totals["411000"].DebitMovement.Equal(decimal.NewFromInt(777)))
}

func (suite *BalanceCalculatorTestSuite) TestComputeBalances_DebitsAndCreditsNotNetted() {
	ctx := context.Background()
	suite.postBalanced("2024-02-01", "411000", "701000", 30000)
	suite.postBalanced("2024-02-02", "512000", "411000", 30000)

	totals, err := suite.calculator.ComputeBalances(ctx, []string{"411000"}, "2024-01-01", "2024-03-31")

	suite.Require().NoError(err)
	t := totals["411000"]
	suite.True(t.DebitMovement.Equal(decimal.NewFromInt(30000)))
	suite.True(t.CreditMovement.Equal(decimal.NewFromInt(30000)))
	suite.False(t.IsZero())
}

func (suite *BalanceCalculatorTestSuite) TestComputeBalances_NoActivityAccountAbsent() {
	ctx := context.Background()

	totals, err := suite.calculator.ComputeBalances(ctx, []string{"411000"}, "2024-01-01", "2024-03-31")

	suite.Require().NoError(err)
	_, present := totals["411000"]
	suite.False(present)
}

func (suite *BalanceCalculatorTestSuite) TestComputeBalances_OrphanLineSkipped() {
	ctx := context.Background()
	suite.postBalanced("2024-02-01", "411000", "701000", 1000)
	suite.store.InjectOrphanLine(domain.AccountEntry{
		LineID:      uuid.NewString(),
		EntryID:     "no-such-entry",
		AccountCode: "411000",
		Debit:       decimal.NewFromInt(500000),
		Credit:      decimal.Zero,
	})

	totals, err := suite.calculator.ComputeBalances(ctx, []string{"411000"}, "2024-01-01", "2024-03-31")

	suite.Require().NoError(err)
	suite.True(totals["411000"].DebitMovement.Equal(decimal.NewFromInt(1000)))
}

func TestBalanceCalculatorTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceCalculatorTestSuite))
}
