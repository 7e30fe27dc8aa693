package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
)

// inceptionDate sorts lexicographically before any real ISO date, so a window
// starting there has an empty opening bucket and captures all history as
// movement.
const inceptionDate = domain.Date("0000-01-01")

// reportingService derives the four regulatory statements from the balance
// calculator's output. Each generator applies its own classification, sign
// and zero-row filtering rules to the same raw totals.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
	entryRepo   portsrepo.EntryReader
	balance     portssvc.BalanceSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, entryRepo portsrepo.EntryReader, balance portssvc.BalanceSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		entryRepo:   entryRepo,
		balance:     balance,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// splitBySign re-expresses a signed balance as separate debit/credit columns.
func splitBySign(bal decimal.Decimal) (debit, credit decimal.Decimal) {
	if bal.IsPositive() {
		return bal, decimal.Zero
	}
	return decimal.Zero, bal.Neg()
}

func accountCodes(accounts []domain.Account) []string {
	codes := make([]string, len(accounts))
	for i, a := range accounts {
		codes[i] = a.Code
	}
	return codes
}

// TrialBalance generates the Balance over [from, to]: opening netted then
// re-split into debit/credit columns, movement as-is, closing re-split the
// same way. Accounts with zero opening and zero movement are omitted. Rows
// are sorted by account code ascending (lexicographic string comparison).
func (s *reportingService) TrialBalance(ctx context.Context, from, to domain.Date) ([]domain.BalanceLine, error) {
	accounts, err := s.accountRepo.FindAccountsByPrefix(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totals, err := s.balance.ComputeBalances(ctx, accountCodes(accounts), from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.BalanceLine, 0, len(accounts))
	for _, account := range accounts {
		t, ok := totals[account.Code]
		if !ok || t.IsZero() {
			continue
		}
		openingBal := t.DebitOpening.Sub(t.CreditOpening)
		debitOpening, creditOpening := splitBySign(openingBal)
		if debitOpening.IsZero() && creditOpening.IsZero() && t.DebitMovement.IsZero() && t.CreditMovement.IsZero() {
			continue
		}
		closingBal := openingBal.Add(t.DebitMovement).Sub(t.CreditMovement)
		debitClosing, creditClosing := splitBySign(closingBal)
		rows = append(rows, domain.BalanceLine{
			AccountCode:    account.Code,
			AccountLabel:   account.Label,
			DebitOpening:   debitOpening,
			CreditOpening:  creditOpening,
			DebitMovement:  t.DebitMovement,
			CreditMovement: t.CreditMovement,
			DebitClosing:   debitClosing,
			CreditClosing:  creditClosing,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })

	s.LogInfo(ctx, "Trial balance generated", slog.String("from", string(from)), slog.String("to", string(to)), slog.Int("row_count", len(rows)))
	return rows, nil
}

// Bilan generates the balance sheet as of a date: one cumulative balance per
// account, classified by the leading digit of the account code. The Resultat
// plug makes Passif.Total equal Actif.Total for any history of balanced
// postings.
func (s *reportingService) Bilan(ctx context.Context, asOf domain.Date) (*domain.Bilan, error) {
	accounts, err := s.accountRepo.FindAccountsByPrefix(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totals, err := s.balance.ComputeBalances(ctx, accountCodes(accounts), inceptionDate, asOf)
	if err != nil {
		return nil, err
	}

	bilan := &domain.Bilan{AsOf: asOf}
	for _, account := range accounts {
		t, ok := totals[account.Code]
		if !ok {
			continue
		}
		bal := t.DebitOpening.Add(t.DebitMovement).Sub(t.CreditOpening).Sub(t.CreditMovement)
		if bal.IsZero() {
			continue
		}
		// Classes 6-9 feed the Compte de Résultat, not balance sheet lines.
		switch account.ClassCode {
		case "1":
			bilan.Passif.Capitaux = bilan.Passif.Capitaux.Add(bal.Neg())
		case "2":
			bilan.Actif.Immobilise = bilan.Actif.Immobilise.Add(bal)
		case "3":
			bilan.Actif.Stocks = bilan.Actif.Stocks.Add(bal)
		case "4":
			if bal.IsPositive() {
				bilan.Actif.Creances = bilan.Actif.Creances.Add(bal)
			} else {
				bilan.Passif.Dettes = bilan.Passif.Dettes.Add(bal.Neg())
			}
		case "5":
			if bal.IsPositive() {
				bilan.Actif.Tresorerie = bilan.Actif.Tresorerie.Add(bal)
			} else {
				bilan.Passif.Tresorerie = bilan.Passif.Tresorerie.Add(bal.Neg())
			}
		}
	}

	bilan.Actif.Total = bilan.Actif.Immobilise.
		Add(bilan.Actif.Stocks).
		Add(bilan.Actif.Creances).
		Add(bilan.Actif.Tresorerie)
	bilan.Passif.Resultat = bilan.Actif.Total.
		Sub(bilan.Passif.Capitaux).
		Sub(bilan.Passif.Dettes).
		Sub(bilan.Passif.Tresorerie)
	bilan.Passif.Total = bilan.Passif.Capitaux.
		Add(bilan.Passif.Dettes).
		Add(bilan.Passif.Tresorerie).
		Add(bilan.Passif.Resultat)

	s.LogInfo(ctx, "Bilan generated", slog.String("as_of", string(asOf)), slog.String("total", bilan.Actif.Total.String()))
	return bilan, nil
}

// CompteResultat generates the income statement over [from, to]. Per prefix,
// the balance is the sum of credit minus debit over the movement window:
// products positive, charges negative. Charge figures are re-expressed as
// absolute values for display; resultat figures keep their sign.
func (s *reportingService) CompteResultat(ctx context.Context, from, to domain.Date) (*domain.IncomeStatement, error) {
	accounts, err := s.accountRepo.FindAccountsByPrefix(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totals, err := s.balance.ComputeBalances(ctx, accountCodes(accounts), from, to)
	if err != nil {
		return nil, err
	}

	// Net movement (credit - debit) per account; opening is irrelevant to the
	// income statement.
	movement := make(map[string]decimal.Decimal, len(totals))
	for code, t := range totals {
		movement[code] = t.CreditMovement.Sub(t.DebitMovement)
	}

	getBalance := func(prefixes ...string) decimal.Decimal {
		sum := decimal.Zero
		for code, bal := range movement {
			for _, p := range prefixes {
				if strings.HasPrefix(code, p) {
					sum = sum.Add(bal)
					break
				}
			}
		}
		return sum
	}

	produitsExploitation := getBalance("70", "71", "72", "73", "74", "75")
	chargesExploitation := getBalance("60", "61", "62", "63", "64", "65")
	resultatExploitation := produitsExploitation.Add(chargesExploitation)
	produitsFinanciers := getBalance("77")
	chargesFinancieres := getBalance("67")
	resultatFinancier := produitsFinanciers.Add(chargesFinancieres)
	rao := resultatExploitation.Add(resultatFinancier)
	produitsHAO := getBalance("82", "84", "86", "88")
	chargesHAO := getBalance("81", "83", "85", "87")
	resultatHAO := produitsHAO.Add(chargesHAO)
	impots := getBalance("89")
	resultatNet := rao.Add(resultatHAO).Add(impots)

	statement := &domain.IncomeStatement{
		From:                 from,
		To:                   to,
		ProduitsExploitation: produitsExploitation,
		ChargesExploitation:  chargesExploitation.Abs(),
		ResultatExploitation: resultatExploitation,
		ProduitsFinanciers:   produitsFinanciers,
		ChargesFinancieres:   chargesFinancieres.Abs(),
		ResultatFinancier:    resultatFinancier,
		RAO:                  rao,
		ProduitsHAO:          produitsHAO,
		ChargesHAO:           chargesHAO.Abs(),
		ResultatHAO:          resultatHAO,
		Impots:               impots.Abs(),
		ResultatNet:          resultatNet,
	}

	s.LogInfo(ctx, "Compte de resultat generated", slog.String("from", string(from)), slog.String("to", string(to)), slog.String("resultat_net", resultatNet.String()))
	return statement, nil
}

// GrandLivre generates the general ledger over [from, to], optionally
// restricted to an account code range (lexicographic string comparison, as
// for sorting). Per account: opening balance, period entries listed
// chronologically (ties keep insertion order) enriched with journal metadata,
// closing = opening + period debits - period credits. Accounts with zero
// opening and no period entries are omitted.
func (s *reportingService) GrandLivre(ctx context.Context, from, to domain.Date, fromAccount, toAccount string) ([]domain.LedgerAccount, error) {
	allAccounts, err := s.accountRepo.FindAccountsByPrefix(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts := make([]domain.Account, 0, len(allAccounts))
	for _, account := range allAccounts {
		if fromAccount != "" && account.Code < fromAccount {
			continue
		}
		if toAccount != "" && account.Code > toAccount {
			continue
		}
		accounts = append(accounts, account)
	}

	codes := accountCodes(accounts)
	totals, err := s.balance.ComputeBalances(ctx, codes, from, to)
	if err != nil {
		return nil, err
	}

	lines, err := s.entryRepo.ListLinesByAccountCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	entryIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.EntryID]; ok {
			continue
		}
		seen[line.EntryID] = struct{}{}
		entryIDs = append(entryIDs, line.EntryID)
	}
	entries, err := s.entryRepo.FindEntriesByIDs(ctx, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entries: %w", err)
	}

	journals, err := s.journalRepo.ListJournals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	journalsByID := make(map[string]domain.Journal, len(journals))
	for _, j := range journals {
		journalsByID[j.JournalID] = j
	}

	// Period lines per account, in insertion order; orphans are skipped the
	// same way the calculator skips them.
	periodLines := make(map[string][]domain.LedgerLine)
	for _, line := range lines {
		entry, ok := entries[line.EntryID]
		if !ok {
			s.LogWarn(ctx, "Skipping orphan account entry in ledger",
				slog.String("line_id", line.LineID),
				slog.String("entry_id", line.EntryID))
			continue
		}
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		journal := journalsByID[entry.JournalID]
		periodLines[line.AccountCode] = append(periodLines[line.AccountCode], domain.LedgerLine{
			EntryID:      entry.EntryID,
			Date:         entry.Date,
			JournalCode:  journal.Code,
			JournalLabel: journal.Label,
			Label:        entry.Label,
			Reference:    entry.Reference,
			Debit:        line.Debit,
			Credit:       line.Credit,
		})
	}

	result := make([]domain.LedgerAccount, 0, len(accounts))
	for _, account := range accounts {
		t := totals[account.Code]
		opening := t.DebitOpening.Sub(t.CreditOpening)
		accountLines := periodLines[account.Code]
		if opening.IsZero() && len(accountLines) == 0 {
			continue
		}
		sort.SliceStable(accountLines, func(i, j int) bool {
			return accountLines[i].Date.Before(accountLines[j].Date)
		})
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, l := range accountLines {
			totalDebit = totalDebit.Add(l.Debit)
			totalCredit = totalCredit.Add(l.Credit)
		}
		result = append(result, domain.LedgerAccount{
			AccountCode:  account.Code,
			AccountLabel: account.Label,
			Opening:      opening,
			Lines:        accountLines,
			TotalDebit:   totalDebit,
			TotalCredit:  totalCredit,
			Closing:      opening.Add(totalDebit).Sub(totalCredit),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].AccountCode < result[j].AccountCode })

	s.LogInfo(ctx, "Grand livre generated", slog.String("from", string(from)), slog.String("to", string(to)), slog.Int("account_count", len(result)))
	return result, nil
}
