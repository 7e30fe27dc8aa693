package domain

import "github.com/shopspring/decimal"

// JournalEntry is one balanced transaction record: a header owning an ordered
// sequence of AccountEntry lines. Invariant: the sum of debits across lines
// equals the sum of credits, exactly, in integer FCFA.
type JournalEntry struct {
	EntryID   string `json:"entryID"`   // Primary key (UUID)
	JournalID string `json:"journalID"` // FK -> Journal.JournalID
	Date      Date   `json:"date"`      // Calendar date of the event
	Label     string `json:"label"`
	Reference string `json:"reference"`
	DossierID string `json:"dossierID"` // Back-reference to a case file, not owned
	Validated bool   `json:"validated"`
	AuditFields
}

// AccountEntry is one debit-or-credit movement against a single account
// within a journal entry. Lines are immutable once posted; corrections are
// made via offsetting entries.
type AccountEntry struct {
	LineID      string          `json:"lineID"`      // Primary key (UUID)
	EntryID     string          `json:"entryID"`     // Owning JournalEntry
	AccountCode string          `json:"accountCode"` // Referenced Account
	Debit       decimal.Decimal `json:"debit"`       // Non-negative
	Credit      decimal.Decimal `json:"credit"`      // Non-negative
	AuditFields
}
