package domain

import "github.com/shopspring/decimal"

// StatementDirection is the side of a bank statement line, from the bank's
// point of view: CREDIT is money arriving on the account, DEBIT money leaving.
type StatementDirection string

const (
	StatementDebit  StatementDirection = "DEBIT"
	StatementCredit StatementDirection = "CREDIT"
)

// StatementLine is one externally-imported bank statement line.
type StatementLine struct {
	Date        Date               `json:"date"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Direction   StatementDirection `json:"direction"`
}

// EntryMovement is the aggregate movement of one journal entry on the
// reconciled account: the entry's lines touching the account summed per side.
type EntryMovement struct {
	EntryID   string          `json:"entryID"`
	Date      Date            `json:"date"`
	Label     string          `json:"label"`
	Reference string          `json:"reference"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// MatchedPair links one statement line to exactly one journal entry.
type MatchedPair struct {
	Statement StatementLine `json:"statement"`
	Entry     EntryMovement `json:"entry"`
}

// ReconciliationResult is the outcome of an automatic matching run.
// Both unmatched sides are reported for manual reconciliation.
type ReconciliationResult struct {
	AccountCode        string          `json:"accountCode"`
	From               Date            `json:"from"`
	To                 Date            `json:"to"`
	Matched            []MatchedPair   `json:"matched"`
	UnmatchedStatement []StatementLine `json:"unmatchedStatement"`
	UnmatchedEntries   []EntryMovement `json:"unmatchedEntries"`
}
