package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/validator"
)

var (
	// ErrNoAccount is returned when the user has no account yet.
	ErrNoAccount = errors.New("no account found, create one first")
	// ErrRecipientRequired is returned for a transfer without recipient.
	ErrRecipientRequired = errors.New("recipient account number is required")
	// ErrInvalidAccountType is returned for an unsupported account type.
	ErrInvalidAccountType = errors.New("account type must be SAVINGS, CHECKING or BUSINESS")
)

// DefaultCurrency is the currency of new accounts when none is given.
const DefaultCurrency = "NPR"

const emptyViewMessage = "No transactions"

//go:generate mockgen -source=dashboard.go -destination=mock_dashboard.go -package=services

// BankAPI defines the account endpoints of the bank backend.
type BankAPI interface {
	ListAccounts(ctx context.Context, credential string) ([]models.Account, error)
	CreateAccount(ctx context.Context, credential string, req models.NewAccountRequest) (*models.Account, error)
	ListTransactions(ctx context.Context, credential string, accountID int64) ([]models.TransactionRecord, error)
	SubmitTransaction(ctx context.Context, credential string, accountID int64, kind models.TransactionKind, form models.TransactionForm) (*models.TransactionRecord, error)
	Profile(ctx context.Context, credential string) (*models.Profile, error)
}

// DashboardService loads account data into the session view and applies
// user actions to it.
type DashboardService struct {
	api      BankAPI
	sessions SessionProvider
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(api BankAPI, sessions SessionProvider) *DashboardService {
	return &DashboardService{
		api:      api,
		sessions: sessions,
	}
}

// Load makes the first account of the user current and replaces the snapshot
// with its transactions. A refresh superseded while running returns
// ErrStaleRefresh and leaves the view to the newer one.
func (s *DashboardService) Load(ctx context.Context) error {
	state, err := s.sessions.State()
	if err != nil {
		return err
	}

	rctx, refresh, err := state.BeginRefresh(ctx)
	if err != nil {
		return err
	}
	defer refresh.Done()

	fail := func(op string, err error) error {
		if rctx.Err() != nil && ctx.Err() == nil {
			return ErrStaleRefresh
		}
		return backendError(ctx, s.sessions, state, op, err)
	}

	accounts, err := s.api.ListAccounts(rctx, state.Credential())
	if err != nil {
		return fail("listing accounts", err)
	}

	if len(accounts) == 0 {
		if err := refresh.Commit(state.View().ClearAccount); err != nil {
			return err
		}
		return ErrNoAccount
	}

	account := accounts[0]
	records, err := s.api.ListTransactions(rctx, state.Credential(), account.ID)
	if err != nil {
		return fail("listing transactions", err)
	}

	if err := refresh.Commit(func() { state.View().ReplaceSnapshot(account, records) }); err != nil {
		return err
	}

	logger.Log.Infow("dashboard loaded", "account", account.AccountNumber, "transactions", len(records))
	return nil
}

// Dashboard renders the current view.
func (s *DashboardService) Dashboard() (*models.DashboardResponse, error) {
	state, err := s.sessions.State()
	if err != nil {
		return nil, err
	}
	return renderDashboard(state.View()), nil
}

// SetFilters updates the filters that are given and renders the view again.
// No backend request is made.
func (s *DashboardService) SetFilters(days *int, txType *models.TransactionType) (*models.DashboardResponse, error) {
	state, err := s.sessions.State()
	if err != nil {
		return nil, err
	}

	view := state.View()
	if err := view.SetFilters(days, txType); err != nil {
		return nil, err
	}
	return renderDashboard(view), nil
}

// SubmitTransaction posts a deposit, withdrawal or transfer from the current
// account and reloads the dashboard.
func (s *DashboardService) SubmitTransaction(ctx context.Context, kind models.TransactionKind, form models.TransactionForm) (*models.TransactionRecord, error) {
	if err := validator.Struct(form); err != nil {
		return nil, err
	}
	form.RecipientAccountNumber = strings.TrimSpace(form.RecipientAccountNumber)
	if kind == models.TransactionKindTransfer && form.RecipientAccountNumber == "" {
		return nil, ErrRecipientRequired
	}

	state, err := s.sessions.State()
	if err != nil {
		return nil, err
	}
	account, ok := state.View().Account()
	if !ok {
		return nil, ErrNoAccount
	}

	record, err := s.api.SubmitTransaction(ctx, state.Credential(), account.ID, kind, form)
	if err != nil {
		return nil, backendError(ctx, s.sessions, state, "submitting "+string(kind), err)
	}

	logger.Log.Infow("transaction submitted", "kind", kind, "account", account.AccountNumber, "amount", form.Amount.String())
	s.reload(ctx)
	return record, nil
}

// CreateAccount opens a new account and reloads the dashboard.
func (s *DashboardService) CreateAccount(ctx context.Context, accountType, currency string) (*models.Account, error) {
	t, ok := models.ParseAccountType(accountType)
	if !ok {
		return nil, ErrInvalidAccountType
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	state, err := s.sessions.State()
	if err != nil {
		return nil, err
	}

	account, err := s.api.CreateAccount(ctx, state.Credential(), models.NewAccountRequest{AccountType: t, Currency: currency})
	if err != nil {
		return nil, backendError(ctx, s.sessions, state, "creating account", err)
	}

	logger.Log.Infow("account created", "account", account.AccountNumber, "type", t)
	s.reload(ctx)
	return account, nil
}

// Profile returns the user profile together with the current account.
func (s *DashboardService) Profile(ctx context.Context) (*models.ProfileResponse, error) {
	state, err := s.sessions.State()
	if err != nil {
		return nil, err
	}

	profile, err := s.api.Profile(ctx, state.Credential())
	if err != nil {
		return nil, backendError(ctx, s.sessions, state, "loading profile", err)
	}

	resp := &models.ProfileResponse{Profile: *profile}
	if account, ok := state.View().Account(); ok {
		resp.Account = &account
	}
	return resp, nil
}

// reload refreshes the dashboard after a successful mutation. The mutation
// already happened, so a failed reload is only logged.
func (s *DashboardService) reload(ctx context.Context) {
	if err := s.Load(ctx); err != nil && !errors.Is(err, ErrStaleRefresh) {
		logger.Log.Warnw("dashboard reload failed", "err", err)
	}
}

func renderDashboard(view *ViewStateStore) *models.DashboardResponse {
	current := view.Current()
	resp := &models.DashboardResponse{
		Account:      current.Account,
		Filters:      current.Filters,
		Transactions: current.Transactions,
	}
	if len(resp.Transactions) == 0 {
		resp.Empty = true
		resp.Message = emptyViewMessage
	}
	return resp
}
