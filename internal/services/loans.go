package services

import (
	"context"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/validator"
)

//go:generate mockgen -source=loans.go -destination=mock_loans.go -package=services

// LoanAPI defines the loan endpoints of the bank backend.
type LoanAPI interface {
	ListLoans(ctx context.Context, credential string) ([]models.Loan, error)
	ApplyLoan(ctx context.Context, credential string, accountID int64, app models.LoanApplication) (*models.Loan, error)
	PayLoan(ctx context.Context, credential string, accountID, loanID int64, payment models.LoanPayment) error
}

// LoanService lists loans and forwards applications and payments.
// Amortization is computed by the backend.
type LoanService struct {
	api      LoanAPI
	sessions SessionProvider
}

// NewLoanService creates a new LoanService.
func NewLoanService(api LoanAPI, sessions SessionProvider) *LoanService {
	return &LoanService{
		api:      api,
		sessions: sessions,
	}
}

// List refreshes the loan list and returns the loans with the given status.
func (s *LoanService) List(ctx context.Context, status models.LoanStatus) (*models.LoansResponse, error) {
	state, err := s.sessions.State()
	if err != nil {
		return nil, err
	}

	loans, err := s.api.ListLoans(ctx, state.Credential())
	if err != nil {
		return nil, backendError(ctx, s.sessions, state, "listing loans", err)
	}

	state.View().ReplaceLoans(loans)
	return &models.LoansResponse{Status: status, Loans: state.View().LoanView(status)}, nil
}

// Apply requests a loan paid out to the current account.
func (s *LoanService) Apply(ctx context.Context, app models.LoanApplication) (*models.Loan, error) {
	if err := validator.Struct(app); err != nil {
		return nil, err
	}

	state, account, err := s.current()
	if err != nil {
		return nil, err
	}

	loan, err := s.api.ApplyLoan(ctx, state.Credential(), account.ID, app)
	if err != nil {
		return nil, backendError(ctx, s.sessions, state, "applying for loan", err)
	}

	logger.Log.Infow("loan requested", "loan_id", loan.LoanID, "amount", app.LoanAmount.String(), "term", app.LoanTermMonths)
	return loan, nil
}

// Pay pays an installment of loanID from the current account.
func (s *LoanService) Pay(ctx context.Context, loanID int64, payment models.LoanPayment) error {
	if err := validator.Struct(payment); err != nil {
		return err
	}

	state, account, err := s.current()
	if err != nil {
		return err
	}

	if err := s.api.PayLoan(ctx, state.Credential(), account.ID, loanID, payment); err != nil {
		return backendError(ctx, s.sessions, state, "paying loan", err)
	}

	logger.Log.Infow("loan payment made", "loan_id", loanID, "amount", payment.Amount.String())
	return nil
}

func (s *LoanService) current() (*AppState, models.Account, error) {
	state, err := s.sessions.State()
	if err != nil {
		return nil, models.Account{}, err
	}
	account, ok := state.View().Account()
	if !ok {
		return nil, models.Account{}, ErrNoAccount
	}
	return state, account, nil
}
