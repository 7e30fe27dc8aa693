package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account. The OHADA class is the leading digit
// of the code; nature and type default from it when the request leaves them
// empty.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	class := domain.ClassOf(req.Code)
	if class < "1" || class > "9" {
		return nil, fmt.Errorf("%w: account code %q must start with an OHADA class digit 1-9", apperrors.ErrValidation, req.Code)
	}

	nature := domain.AccountNature(req.Nature)
	if nature == "" {
		nature = domain.NatureForClass(class)
	}
	accountType := domain.AccountType(req.Type)
	if accountType == "" {
		accountType = domain.TypeForCode(req.Code)
	}

	if req.ParentCode != "" {
		if _, err := s.accountRepo.FindAccountByCode(ctx, req.ParentCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, req.ParentCode)
			}
			return nil, fmt.Errorf("failed to check parent account: %w", err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:       req.Code,
		Label:      req.Label,
		ClassCode:  class,
		Type:       accountType,
		ParentCode: req.ParentCode,
		Nature:     nature,
		IsSummary:  req.IsSummary,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_code", account.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_code", account.Code), slog.String("class", class))
	return &account, nil
}

// GetAccountByCode retrieves an account by its code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("account_code", code))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts lists accounts sorted by code, optionally filtered by a code
// prefix (used heavily by statement generators to bucket by OHADA class).
func (s *accountService) ListAccounts(ctx context.Context, prefix string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByPrefix(ctx, prefix)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("prefix", prefix))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies partial updates. The code and class are immutable.
func (s *accountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		account.Label = *req.Label
	}
	if req.Type != nil {
		account.Type = domain.AccountType(*req.Type)
	}
	if req.ParentCode != nil {
		account.ParentCode = *req.ParentCode
	}
	if req.IsSummary != nil {
		account.IsSummary = *req.IsSummary
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_code", code))
	return account, nil
}

// DeleteAccount removes an account. The repository refuses with ErrConflict
// while any AccountEntry references the code.
func (s *accountService) DeleteAccount(ctx context.Context, code string) error {
	if err := s.accountRepo.DeleteAccount(ctx, code); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_code", code))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_code", code))
	return nil
}
