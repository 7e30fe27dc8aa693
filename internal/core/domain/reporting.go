package domain

import "github.com/shopspring/decimal"

// PeriodTotals are the raw per-account debit/credit sums for a period,
// partitioned into an opening bucket (before the window) and a movement
// bucket (inside the window). Debits and credits are deliberately not
// netted here: netting and sign conventions are report-level decisions.
type PeriodTotals struct {
	DebitOpening   decimal.Decimal `json:"debitOpening"`
	CreditOpening  decimal.Decimal `json:"creditOpening"`
	DebitMovement  decimal.Decimal `json:"debitMovement"`
	CreditMovement decimal.Decimal `json:"creditMovement"`
}

// IsZero reports whether every bucket is zero.
func (t PeriodTotals) IsZero() bool {
	return t.DebitOpening.IsZero() && t.CreditOpening.IsZero() &&
		t.DebitMovement.IsZero() && t.CreditMovement.IsZero()
}

// BalanceLine is one row of the trial balance (Balance). Opening and closing
// are re-expressed as separate debit/credit columns after netting.
type BalanceLine struct {
	AccountCode    string          `json:"accountCode"`
	AccountLabel   string          `json:"accountLabel"`
	DebitOpening   decimal.Decimal `json:"debitOpening"`
	CreditOpening  decimal.Decimal `json:"creditOpening"`
	DebitMovement  decimal.Decimal `json:"debitMovement"`
	CreditMovement decimal.Decimal `json:"creditMovement"`
	DebitClosing   decimal.Decimal `json:"debitClosing"`
	CreditClosing  decimal.Decimal `json:"creditClosing"`
}

// BilanActif groups the asset side of the balance sheet by OHADA class.
type BilanActif struct {
	Immobilise decimal.Decimal `json:"immobilise"` // Class 2
	Stocks     decimal.Decimal `json:"stocks"`     // Class 3
	Creances   decimal.Decimal `json:"creances"`   // Class 4, debit balances
	Tresorerie decimal.Decimal `json:"tresorerie"` // Class 5, debit balances
	Total      decimal.Decimal `json:"total"`
}

// BilanPassif groups the liability side of the balance sheet. Credit-natured
// figures are stored as absolute values.
type BilanPassif struct {
	Capitaux   decimal.Decimal `json:"capitaux"`   // Class 1
	Dettes     decimal.Decimal `json:"dettes"`     // Class 4, credit balances
	Tresorerie decimal.Decimal `json:"tresorerie"` // Class 5, credit balances
	Resultat   decimal.Decimal `json:"resultat"`   // Net income plug
	Total      decimal.Decimal `json:"total"`
}

// Bilan is the balance sheet as of a date, cumulative from inception.
// Passif.Total equals Actif.Total by construction of the Resultat plug.
type Bilan struct {
	AsOf   Date        `json:"asOf"`
	Actif  BilanActif  `json:"actif"`
	Passif BilanPassif `json:"passif"`
}

// IncomeStatement is the Compte de Résultat over a period. Charge figures are
// absolute values for display; the resultat figures carry their accounting
// sign (a loss is negative).
type IncomeStatement struct {
	From                 Date            `json:"from"`
	To                   Date            `json:"to"`
	ProduitsExploitation decimal.Decimal `json:"produitsExploitation"` // Classes 70-75
	ChargesExploitation  decimal.Decimal `json:"chargesExploitation"`  // Classes 60-65
	ResultatExploitation decimal.Decimal `json:"resultatExploitation"`
	ProduitsFinanciers   decimal.Decimal `json:"produitsFinanciers"` // Class 77
	ChargesFinancieres   decimal.Decimal `json:"chargesFinancieres"` // Class 67
	ResultatFinancier    decimal.Decimal `json:"resultatFinancier"`
	RAO                  decimal.Decimal `json:"rao"`          // Résultat des activités ordinaires
	ProduitsHAO          decimal.Decimal `json:"produitsHAO"`  // Classes 82,84,86,88
	ChargesHAO           decimal.Decimal `json:"chargesHAO"`   // Classes 81,83,85,87
	ResultatHAO          decimal.Decimal `json:"resultatHAO"`
	Impots               decimal.Decimal `json:"impots"` // Class 89
	ResultatNet          decimal.Decimal `json:"resultatNet"`
}

// LedgerLine is one journal entry movement inside a Grand Livre account
// section, enriched with its journal and reference.
type LedgerLine struct {
	EntryID      string          `json:"entryID"`
	Date         Date            `json:"date"`
	JournalCode  string          `json:"journalCode"`
	JournalLabel string          `json:"journalLabel"`
	Label        string          `json:"label"`
	Reference    string          `json:"reference"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// LedgerAccount is the Grand Livre section for one account: opening balance,
// chronological period lines and the resulting closing balance.
type LedgerAccount struct {
	AccountCode  string          `json:"accountCode"`
	AccountLabel string          `json:"accountLabel"`
	Opening      decimal.Decimal `json:"opening"`
	Lines        []LedgerLine    `json:"lines"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	Closing      decimal.Decimal `json:"closing"`
}
