package dto

import (
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one debit-or-credit movement of a new entry.
// Exactly one of Debit and Credit must be strictly positive.
type CreateEntryLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the payload for posting a journal entry.
type CreateEntryRequest struct {
	JournalCode string                   `json:"journalCode" binding:"required"`
	Date        string                   `json:"date" binding:"required"`
	Label       string                   `json:"label" binding:"required"`
	Reference   string                   `json:"reference"`
	DossierID   string                   `json:"dossierID"`
	Validated   bool                     `json:"validated"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseEntryRequest defines the payload for reversing a posted entry.
// Date defaults to the original entry's date when empty.
type ReverseEntryRequest struct {
	Date string `json:"date"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse defines the combined response for an entry and its lines.
type EntryResponse struct {
	EntryID   string              `json:"entryID"`
	JournalID string              `json:"journalID"`
	Date      string              `json:"date"`
	Label     string              `json:"label"`
	Reference string              `json:"reference,omitempty"`
	DossierID string              `json:"dossierID,omitempty"`
	Validated bool                `json:"validated"`
	Lines     []EntryLineResponse `json:"lines"`
}

// ToEntryResponse converts a domain entry with its lines to the response DTO.
func ToEntryResponse(entry *domain.JournalEntry, lines []domain.AccountEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:   entry.EntryID,
		JournalID: entry.JournalID,
		Date:      string(entry.Date),
		Label:     entry.Label,
		Reference: entry.Reference,
		DossierID: entry.DossierID,
		Validated: entry.Validated,
		Lines:     make([]EntryLineResponse, len(lines)),
	}
	for i, line := range lines {
		resp.Lines[i] = EntryLineResponse{
			LineID:      line.LineID,
			AccountCode: line.AccountCode,
			Debit:       line.Debit,
			Credit:      line.Credit,
		}
	}
	return resp
}

// EntryHeaderResponse defines the data returned when listing entries.
type EntryHeaderResponse struct {
	EntryID   string `json:"entryID"`
	JournalID string `json:"journalID"`
	Date      string `json:"date"`
	Label     string `json:"label"`
	Reference string `json:"reference,omitempty"`
	Validated bool   `json:"validated"`
}

// ToEntryHeaderResponses converts a slice of entry headers.
func ToEntryHeaderResponses(entries []domain.JournalEntry) []EntryHeaderResponse {
	responses := make([]EntryHeaderResponse, len(entries))
	for i, e := range entries {
		responses[i] = EntryHeaderResponse{
			EntryID:   e.EntryID,
			JournalID: e.JournalID,
			Date:      string(e.Date),
			Label:     e.Label,
			Reference: e.Reference,
			Validated: e.Validated,
		}
	}
	return responses
}
