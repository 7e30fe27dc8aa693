package dto

import (
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	From   string               `json:"from"`
	To     string               `json:"to"`
	Rows   []domain.BalanceLine `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse wraps trial balance rows with period movement totals.
func ToTrialBalanceResponse(rows []domain.BalanceLine, from, to domain.Date) TrialBalanceResponse {
	response := TrialBalanceResponse{
		From: string(from),
		To:   string(to),
		Rows: rows,
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.DebitMovement)
		totalCredit = totalCredit.Add(row.CreditMovement)
	}
	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit

	return response
}

// GrandLivreResponse represents the general ledger report response.
type GrandLivreResponse struct {
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Accounts []domain.LedgerAccount `json:"accounts"`
}

// ToGrandLivreResponse wraps ledger account sections with the period bounds.
func ToGrandLivreResponse(accounts []domain.LedgerAccount, from, to domain.Date) GrandLivreResponse {
	return GrandLivreResponse{
		From:     string(from),
		To:       string(to),
		Accounts: accounts,
	}
}
