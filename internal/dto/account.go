package dto

import (
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
// Nature and Type default from the OHADA class of the code when omitted.
type CreateAccountRequest struct {
	Code       string `json:"code" binding:"required,numeric"`
	Label      string `json:"label" binding:"required"`
	Type       string `json:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentCode string `json:"parentCode"`
	Nature     string `json:"nature" binding:"omitempty,oneof=DEBIT CREDIT"`
	IsSummary  bool   `json:"isSummary"`
}

// UpdateAccountRequest defines the partial-update payload for an account.
// The account code is immutable; absent fields are left untouched.
type UpdateAccountRequest struct {
	Label      *string `json:"label"`
	Type       *string `json:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentCode *string `json:"parentCode"`
	IsSummary  *bool   `json:"isSummary"`
	IsActive   *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	ClassCode  string `json:"classCode"`
	Type       string `json:"type"`
	ParentCode string `json:"parentCode,omitempty"`
	Nature     string `json:"nature"`
	IsSummary  bool   `json:"isSummary"`
	IsActive   bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Code:       a.Code,
		Label:      a.Label,
		ClassCode:  a.ClassCode,
		Type:       string(a.Type),
		ParentCode: a.ParentCode,
		Nature:     string(a.Nature),
		IsSummary:  a.IsSummary,
		IsActive:   a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
