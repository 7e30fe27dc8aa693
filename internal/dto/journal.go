package dto

import (
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

// CreateJournalRequest defines the payload for creating a journal.
type CreateJournalRequest struct {
	Code  string `json:"code" binding:"required"`
	Label string `json:"label" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=VENTES ACHATS BANQUE CAISSE OPERATIONS NOUVEAU"`
}

// UpdateJournalRequest defines the partial-update payload for a journal.
type UpdateJournalRequest struct {
	Label    *string `json:"label"`
	Type     *string `json:"type" binding:"omitempty,oneof=VENTES ACHATS BANQUE CAISSE OPERATIONS NOUVEAU"`
	IsActive *bool   `json:"isActive"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID string `json:"journalID"`
	Code      string `json:"code"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	IsActive  bool   `json:"isActive"`
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID: j.JournalID,
		Code:      j.Code,
		Label:     j.Label,
		Type:      string(j.Type),
		IsActive:  j.IsActive,
	}
}

// ToJournalResponses converts a slice of domain journals.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}
