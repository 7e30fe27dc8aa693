package domain

// JournalType classifies a journal by the kind of operations it groups.
type JournalType string

const (
	JournalVentes     JournalType = "VENTES"
	JournalAchats     JournalType = "ACHATS"
	JournalBanque     JournalType = "BANQUE"
	JournalCaisse     JournalType = "CAISSE"
	JournalOperations JournalType = "OPERATIONS"
	JournalNouveau    JournalType = "NOUVEAU"
)

// Journal is a named ledger subdivision entries are grouped into.
// Deletion is forbidden while any JournalEntry references it.
type Journal struct {
	JournalID string      `json:"journalID"` // Primary key (UUID)
	Code      string      `json:"code"`      // Unique short code, e.g. "BQ1"
	Label     string      `json:"label"`
	Type      JournalType `json:"type"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}
