package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

// Known loan statuses. Anything else decodes to LoanStatusOther.
const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusAccepted LoanStatus = "ACCEPTED"
	LoanStatusRejected LoanStatus = "REJECTED"
	LoanStatusPaid     LoanStatus = "PAID"
	LoanStatusOther    LoanStatus = "OTHER"

	// LoanStatusAny disables the status predicate of the loan view.
	LoanStatusAny LoanStatus = ""
)

// ParseLoanStatus maps a backend value onto the closed enumeration.
func ParseLoanStatus(raw string) LoanStatus {
	switch s := LoanStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case LoanStatusPending, LoanStatusAccepted, LoanStatusRejected, LoanStatusPaid:
		return s
	}
	return LoanStatusOther
}

// UnmarshalJSON keeps unknown statuses decodable.
func (s *LoanStatus) UnmarshalJSON(data []byte) error {
	*s = ParseLoanStatus(scalarText(data))
	return nil
}

// Loan is a loan as listed by the backend. Amortization figures are server computed.
type Loan struct {
	LoanID          int64           `json:"loan_id"`
	Borrower        int64           `json:"borrower"`
	BorrowerName    string          `json:"borrower_name"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	LoanTermMonths  int             `json:"loan_term_months"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	Status          LoanStatus      `json:"status"`
	IsAccepted      bool            `json:"is_accepted"`
	AppliedDate     string          `json:"applied_date"`
	NextPaymentDate string          `json:"next_payment_date,omitempty"`
	Purpose         string          `json:"purpose,omitempty"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
}

// LoanApplication is the payload of a loan request. The ranges mirror the
// backend validators so obvious mistakes are reported without a round-trip.
type LoanApplication struct {
	LoanAmount     decimal.Decimal `json:"loan_amount" validate:"min=10000,max=5000000"`
	InterestRate   decimal.Decimal `json:"interest_rate" validate:"min=5,max=25"`
	LoanTermMonths int             `json:"loan_term_months" validate:"min=6,max=120"`
	Purpose        string          `json:"purpose,omitempty"`
}

// LoanPayment is the payload of a loan installment.
type LoanPayment struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Notes  string          `json:"notes,omitempty"`
}
