package services

import (
	"errors"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

var (
	// ErrInvalidRecencyWindow is returned for a negative recency window.
	ErrInvalidRecencyWindow = errors.New("recency window must not be negative")
	// ErrInvalidTypeFilter is returned when a type filter is not a known transaction type.
	ErrInvalidTypeFilter = errors.New("unknown transaction type filter")
)

// ViewStateStore holds the current account, the unfiltered transaction
// snapshot of that account and the dashboard filters. Views are always
// derived from the snapshot and never written back into it.
type ViewStateStore struct {
	mu       sync.RWMutex
	now      func() time.Time
	defaults models.Filters

	account  *models.Account
	snapshot []models.Transaction
	filters  models.Filters
	loans    []models.Loan
}

// NewViewStateStore creates a store with the given default recency window.
// A nil clock means time.Now.
func NewViewStateStore(defaultDays int, now func() time.Time) *ViewStateStore {
	if now == nil {
		now = time.Now
	}
	if defaultDays < 0 {
		defaultDays = models.DefaultRecencyDays
	}
	defaults := models.Filters{RecencyDays: defaultDays, Type: models.TypeFilterNone}
	return &ViewStateStore{
		now:      now,
		defaults: defaults,
		filters:  defaults,
	}
}

// ReplaceSnapshot makes account current and replaces the whole snapshot with
// the normalized records.
func (s *ViewStateStore) ReplaceSnapshot(account models.Account, records []models.TransactionRecord) {
	snapshot := make([]models.Transaction, len(records))
	for i, r := range records {
		snapshot[i] = r.Normalize()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = &account
	s.snapshot = snapshot
}

// ClearAccount forgets the current account and its snapshot. Filters are kept.
func (s *ViewStateStore) ClearAccount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
	s.snapshot = nil
}

// SetRecencyFilter sets the recency window in days; 0 shows all history.
func (s *ViewStateStore) SetRecencyFilter(days int) error {
	if days < 0 {
		return ErrInvalidRecencyWindow
	}
	s.mu.Lock()
	s.filters.RecencyDays = days
	s.mu.Unlock()
	return nil
}

// SetTypeFilter restricts the view to one transaction type.
// models.TypeFilterNone removes the restriction.
func (s *ViewStateStore) SetTypeFilter(t models.TransactionType) error {
	if !validTypeFilter(t) {
		return ErrInvalidTypeFilter
	}
	s.mu.Lock()
	s.filters.Type = t
	s.mu.Unlock()
	return nil
}

// SetFilters changes the given filters together. Nothing changes when either
// value is invalid.
func (s *ViewStateStore) SetFilters(days *int, t *models.TransactionType) error {
	if days != nil && *days < 0 {
		return ErrInvalidRecencyWindow
	}
	if t != nil && !validTypeFilter(*t) {
		return ErrInvalidTypeFilter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if days != nil {
		s.filters.RecencyDays = *days
	}
	if t != nil {
		s.filters.Type = *t
	}
	return nil
}

func validTypeFilter(t models.TransactionType) bool {
	switch t {
	case models.TypeFilterNone, models.TransactionTypeDeposit,
		models.TransactionTypeWithdraw, models.TransactionTypeTransfer:
		return true
	}
	return false
}

// Filters returns the active filters.
func (s *ViewStateStore) Filters() models.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// Account returns the current account, if any.
func (s *ViewStateStore) Account() (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return models.Account{}, false
	}
	return *s.account, true
}

// Snapshot returns a copy of the unfiltered snapshot.
func (s *ViewStateStore) Snapshot() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// FilteredView applies both filters to the snapshot, keeping backend order.
// The recency cutoff is computed from the clock on every call.
func (s *ViewStateStore) FilteredView() []models.TransactionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered()
}

// ViewSnapshot is a consistent reading of the store.
type ViewSnapshot struct {
	Account      *models.Account
	Filters      models.Filters
	Transactions []models.TransactionView
}

// Current returns the account, the filters and the filtered view as of one
// moment.
func (s *ViewStateStore) Current() ViewSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ViewSnapshot{Filters: s.filters, Transactions: s.filtered()}
	if s.account != nil {
		account := *s.account
		snap.Account = &account
	}
	return snap
}

func (s *ViewStateStore) filtered() []models.TransactionView {
	var cutoff time.Time
	if s.filters.RecencyDays > 0 {
		cutoff = s.now().AddDate(0, 0, -s.filters.RecencyDays)
	}

	view := make([]models.TransactionView, 0, len(s.snapshot))
	for _, tx := range s.snapshot {
		if !cutoff.IsZero() && tx.HasTimestamp() && tx.CreatedAt.Before(cutoff) {
			continue
		}
		if s.filters.Type != models.TypeFilterNone && tx.Type != s.filters.Type {
			continue
		}
		view = append(view, render(tx, s.account))
	}
	return view
}

// Reset returns the store to its initial state.
func (s *ViewStateStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
	s.snapshot = nil
	s.loans = nil
	s.filters = s.defaults
}

// ReplaceLoans replaces the stored loan list.
func (s *ViewStateStore) ReplaceLoans(loans []models.Loan) {
	stored := make([]models.Loan, len(loans))
	copy(stored, loans)

	s.mu.Lock()
	s.loans = stored
	s.mu.Unlock()
}

// LoanView returns the stored loans with the given status, in backend order.
// models.LoanStatusAny returns all of them.
func (s *ViewStateStore) LoanView(status models.LoanStatus) []models.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make([]models.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		if status != models.LoanStatusAny && l.Status != status {
			continue
		}
		view = append(view, l)
	}
	return view
}

func render(tx models.Transaction, account *models.Account) models.TransactionView {
	sign := deriveSign(tx, account)
	displayType := string(tx.Type)
	if tx.Type == models.TransactionTypeOther {
		displayType = tx.RawType
		if displayType == "" {
			displayType = "UNKNOWN"
		}
	}
	return models.TransactionView{
		Transaction:   tx,
		Sign:          sign,
		DisplayAmount: string(sign) + tx.Amount.StringFixed(2),
		DisplayType:   displayType,
	}
}

// deriveSign: deposits credit the account, transfers credit it only when it
// is the recipient, everything else debits it.
func deriveSign(tx models.Transaction, account *models.Account) models.Sign {
	switch tx.Type {
	case models.TransactionTypeDeposit:
		return models.SignCredit
	case models.TransactionTypeTransfer:
		if account != nil && isRecipient(tx, *account) {
			return models.SignCredit
		}
	}
	return models.SignDebit
}

func isRecipient(tx models.Transaction, account models.Account) bool {
	if tx.RecipientAccountNumber != "" && account.AccountNumber != "" {
		return tx.RecipientAccountNumber == account.AccountNumber
	}
	if tx.RecipientAccountID != 0 {
		return tx.RecipientAccountID == account.ID
	}
	return false
}
