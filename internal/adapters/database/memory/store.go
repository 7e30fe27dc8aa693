// Package memory provides an in-memory implementation of the repository
// ports. All mutations are serialized behind a single writer lock while
// read-only statement generation proceeds concurrently against a consistent
// snapshot. It backs the test suite and the DB-less development mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
)

// Store holds every record set behind one RWMutex.
type Store struct {
	mu sync.RWMutex

	accounts       map[string]domain.Account // keyed by code
	journals       map[string]domain.Journal // keyed by id
	journalCodes   map[string]string         // code -> id
	entries        map[string]domain.JournalEntry
	entryOrder     []string // insertion order of entry ids
	linesByEntry   map[string][]domain.AccountEntry
	linesByAccount map[string][]domain.AccountEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:       make(map[string]domain.Account),
		journals:       make(map[string]domain.Journal),
		journalCodes:   make(map[string]string),
		entries:        make(map[string]domain.JournalEntry),
		linesByEntry:   make(map[string][]domain.AccountEntry),
		linesByAccount: make(map[string][]domain.AccountEntry),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.EntryRepositoryFacade   = (*Store)(nil)
)

// Repositories returns the store as a provider for the service container.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: s,
		JournalRepo: s,
		EntryRepo:   s,
	}
}

// --- AccountRepositoryFacade ---

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.Code]; exists {
		return fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, account.Code)
	}
	s.accounts[account.Code] = account
	return nil
}

func (s *Store) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (s *Store) FindAccountsByCodes(_ context.Context, codes []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		if account, ok := s.accounts[code]; ok {
			result[code] = account
		}
	}
	return result, nil
}

func (s *Store) FindAccountsByPrefix(_ context.Context, prefix string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]domain.Account, 0, len(s.accounts))
	for code, account := range s.accounts {
		if strings.HasPrefix(code, prefix) {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Code]; !ok {
		return apperrors.ErrNotFound
	}
	s.accounts[account.Code] = account
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[code]; !ok {
		return apperrors.ErrNotFound
	}
	if len(s.linesByAccount[code]) > 0 {
		return fmt.Errorf("%w: account %s is referenced by posted entries", apperrors.ErrConflict, code)
	}
	delete(s.accounts, code)
	return nil
}

// --- JournalRepositoryFacade ---

func (s *Store) SaveJournal(_ context.Context, journal domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.journalCodes[journal.Code]; exists {
		return fmt.Errorf("%w: journal code %s already exists", apperrors.ErrConflict, journal.Code)
	}
	s.journals[journal.JournalID] = journal
	s.journalCodes[journal.Code] = journal.JournalID
	return nil
}

func (s *Store) FindJournalByID(_ context.Context, journalID string) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	journal, ok := s.journals[journalID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &journal, nil
}

func (s *Store) FindJournalByCode(_ context.Context, code string) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.journalCodes[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	journal := s.journals[id]
	return &journal, nil
}

func (s *Store) ListJournals(_ context.Context) ([]domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	journals := make([]domain.Journal, 0, len(s.journals))
	for _, journal := range s.journals {
		journals = append(journals, journal)
	}
	sort.Slice(journals, func(i, j int) bool { return journals[i].Code < journals[j].Code })
	return journals, nil
}

func (s *Store) UpdateJournal(_ context.Context, journal domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.journals[journal.JournalID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if existing.Code != journal.Code {
		delete(s.journalCodes, existing.Code)
		s.journalCodes[journal.Code] = journal.JournalID
	}
	s.journals[journal.JournalID] = journal
	return nil
}

func (s *Store) DeleteJournal(_ context.Context, journalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	journal, ok := s.journals[journalID]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, entry := range s.entries {
		if entry.JournalID == journalID {
			return fmt.Errorf("%w: journal %s is referenced by posted entries", apperrors.ErrConflict, journal.Code)
		}
	}
	delete(s.journals, journalID)
	delete(s.journalCodes, journal.Code)
	return nil
}

// --- EntryRepositoryFacade ---

func (s *Store) SaveEntry(_ context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[entry.EntryID]; exists {
		return fmt.Errorf("%w: entry %s already exists", apperrors.ErrConflict, entry.EntryID)
	}
	s.entries[entry.EntryID] = entry
	s.entryOrder = append(s.entryOrder, entry.EntryID)
	s.linesByEntry[entry.EntryID] = append([]domain.AccountEntry(nil), lines...)
	for _, line := range lines {
		s.linesByAccount[line.AccountCode] = append(s.linesByAccount[line.AccountCode], line)
	}
	return nil
}

func (s *Store) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entry, nil
}

func (s *Store) FindLinesByEntryID(_ context.Context, entryID string) ([]domain.AccountEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.entries[entryID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	return append([]domain.AccountEntry(nil), s.linesByEntry[entryID]...), nil
}

func (s *Store) FindEntriesByIDs(_ context.Context, entryIDs []string) (map[string]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]domain.JournalEntry, len(entryIDs))
	for _, id := range entryIDs {
		if entry, ok := s.entries[id]; ok {
			result[id] = entry
		}
	}
	return result, nil
}

func (s *Store) ListEntries(_ context.Context, journalID string, from, to domain.Date) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.JournalEntry, 0, len(s.entryOrder))
	for _, id := range s.entryOrder {
		entry := s.entries[id]
		if journalID != "" && entry.JournalID != journalID {
			continue
		}
		if from != "" && entry.Date.Before(from) {
			continue
		}
		if to != "" && entry.Date.After(to) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

func (s *Store) ListLinesByAccountCodes(_ context.Context, codes []string) ([]domain.AccountEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var lines []domain.AccountEntry
	for _, code := range codes {
		lines = append(lines, s.linesByAccount[code]...)
	}
	return lines, nil
}

// InjectOrphanLine attaches a line to an account without any owning entry.
// Test hook for the integrity-gap read path; the posting engine can never
// produce this state.
func (s *Store) InjectOrphanLine(line domain.AccountEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linesByAccount[line.AccountCode] = append(s.linesByAccount[line.AccountCode], line)
}
