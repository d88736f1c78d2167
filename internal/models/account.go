package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product type of a bank account.
type AccountType string

// Supported account types
const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeBusiness AccountType = "BUSINESS"
)

// ParseAccountType validates an account type for account creation.
func ParseAccountType(raw string) (AccountType, bool) {
	switch t := AccountType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeBusiness:
		return t, true
	}
	return "", false
}

// Account represents a bank account owned by the signed-in user
type Account struct {
	ID            int64           `json:"id"`             // Backend primary key
	AccountNumber string          `json:"account_number"` // Public 12 digit account number
	AccountType   AccountType     `json:"account_type"`   // SAVINGS, CHECKING or BUSINESS
	Balance       decimal.Decimal `json:"balance"`        // Current balance
	Currency      string          `json:"currency"`       // ISO 4217 code, NPR by default on the backend
	IsActive      bool            `json:"is_active"`      // Inactive accounts are hidden by the backend
	CreatedAt     time.Time       `json:"created_at"`     // Creation timestamp
}

// NewAccountRequest is the payload of account creation
type NewAccountRequest struct {
	AccountType AccountType `json:"account_type"`
	Currency    string      `json:"currency"`
}
