package dto

import (
	"fmt"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementLineRequest is one imported bank statement line.
type StatementLineRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Direction   string          `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
}

// AutoMatchRequest defines the payload for an automatic matching run.
type AutoMatchRequest struct {
	From  string                 `json:"from" binding:"required"`
	To    string                 `json:"to" binding:"required"`
	Lines []StatementLineRequest `json:"lines" binding:"required,dive"`
}

// ToStatementLines validates and converts request lines to domain lines.
func (r AutoMatchRequest) ToStatementLines() ([]domain.StatementLine, error) {
	lines := make([]domain.StatementLine, len(r.Lines))
	for i, l := range r.Lines {
		date, err := domain.ParseDate(l.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: statement line %d: %v", apperrors.ErrValidation, i, err)
		}
		if l.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: statement line %d: amount must be positive", apperrors.ErrValidation, i)
		}
		lines[i] = domain.StatementLine{
			Date:        date,
			Description: l.Description,
			Amount:      l.Amount,
			Direction:   domain.StatementDirection(l.Direction),
		}
	}
	return lines, nil
}
