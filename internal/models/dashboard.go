package models

// Filters is the pair of dashboard predicates.
type Filters struct {
	RecencyDays int             `json:"days"`
	Type        TransactionType `json:"type"`
}

// DefaultRecencyDays is the recency window applied when a dashboard opens.
const DefaultRecencyDays = 7

// DefaultFilters returns the filters of a freshly opened dashboard.
func DefaultFilters() Filters {
	return Filters{RecencyDays: DefaultRecencyDays, Type: TypeFilterNone}
}

// DashboardResponse is the rendered dashboard
// swagger:model DashboardResponse
type DashboardResponse struct {
	// Current account, absent when the user has none yet
	Account *Account `json:"account,omitempty"`

	// Active filters
	Filters Filters `json:"filters"`

	// Filtered transactions in backend order
	Transactions []TransactionView `json:"transactions"`

	// True when nothing is shown; no data and no matches render alike
	// example: false
	Empty bool `json:"empty"`

	// Empty state message
	// example: No transactions
	Message string `json:"message,omitempty"`
}

// FiltersRequest represents the JSON body for changing dashboard filters
// swagger:model FiltersRequest
type FiltersRequest struct {
	// Recency window in days, 0 for all history
	// example: 30
	Days *int `json:"days" validate:"omitempty,min=0"`

	// Transaction type, empty for all
	// example: TRANSFER
	Type *string `json:"type"`
}

// ErrorResponse is the generic error body of the gateway
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Transaction failed
	Error string `json:"error"`
}

// MessageResponse is the generic success body of the gateway
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	// example: Transaction successful
	Message string `json:"message"`
}

// ProfileResponse combines the profile with the current account
// swagger:model ProfileResponse
type ProfileResponse struct {
	Profile Profile  `json:"profile"`
	Account *Account `json:"account,omitempty"`
}

// LoansResponse lists the loans of the user
// swagger:model LoansResponse
type LoansResponse struct {
	// Status filter that was applied
	// example: PENDING
	Status LoanStatus `json:"status,omitempty"`
	Loans  []Loan     `json:"loans"`
}
