package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of a ledger movement as reported by the backend.
type TransactionType string

// Known transaction types. Anything else decodes to TransactionTypeOther.
const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeOther    TransactionType = "OTHER"

	// TypeFilterNone disables the type predicate of the dashboard view.
	TypeFilterNone TransactionType = ""
)

// ParseTransactionType maps a backend value onto the closed enumeration.
// Both "WITHDRAW" and "WITHDRAWAL" are accepted for withdrawals.
func ParseTransactionType(raw string) TransactionType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEPOSIT":
		return TransactionTypeDeposit
	case "WITHDRAW", "WITHDRAWAL":
		return TransactionTypeWithdraw
	case "TRANSFER":
		return TransactionTypeTransfer
	default:
		return TransactionTypeOther
	}
}

// ParseTypeFilter parses a user supplied type filter. Empty input, "all" and
// "none" mean no filter; unknown values are reported as not ok.
func ParseTypeFilter(raw string) (TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all", "none":
		return TypeFilterNone, true
	}
	t := ParseTransactionType(raw)
	if t == TransactionTypeOther {
		return TypeFilterNone, false
	}
	return t, true
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// RecipientRef is the recipient of a transfer as the backend sends it: either
// an embedded account object, a bare account number or a bare account id.
type RecipientRef struct {
	AccountID     int64  // set when the backend sent a numeric primary key
	AccountNumber string // set when an account number was available
}

// UnmarshalJSON accepts {"account_number": "X"}, "X", 42 and null.
func (r *RecipientRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = RecipientRef{}
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			ID            json.RawMessage `json:"id"`
			AccountNumber json.RawMessage `json:"account_number"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		id, _ := strconv.ParseInt(scalarText(obj.ID), 10, 64)
		*r = RecipientRef{AccountID: id, AccountNumber: scalarText(obj.AccountNumber)}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RecipientRef{AccountNumber: strings.TrimSpace(s)}
	default:
		id, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return err
		}
		*r = RecipientRef{AccountID: id}
	}
	return nil
}

// scalarText renders a JSON string or number as plain text.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(raw)
}

// TransactionRecord is a transaction exactly as listed by the backend.
type TransactionRecord struct {
	ID                     int64           `json:"id"`                                 // Backend primary key
	Account                int64           `json:"account"`                            // Owning account id
	TransactionType        string          `json:"transaction_type"`                   // Raw type, may be empty or unknown
	Amount                 decimal.Decimal `json:"amount"`                             // Non-negative amount
	BalanceAfter           decimal.Decimal `json:"balance_after"`                      // Balance of the owning account after posting
	Description            string          `json:"description"`                        // Optional free text
	RecipientAccount       *RecipientRef   `json:"recipient_account,omitempty"`        // Embedded object or bare identifier
	RecipientAccountNumber string          `json:"recipient_account_number,omitempty"` // Scalar recipient, when serialized flat
	Status                 string          `json:"status"`                             // PENDING, COMPLETED or FAILED
	CreatedAt              string          `json:"created_at"`                         // Server timestamp, parsed leniently
}

// Transaction is a normalized record held in the dashboard snapshot.
type Transaction struct {
	ID                     int64             `json:"id"`
	Account                int64             `json:"account"`
	Type                   TransactionType   `json:"transaction_type"`
	RawType                string            `json:"raw_type,omitempty"`
	Amount                 decimal.Decimal   `json:"amount"`
	BalanceAfter           decimal.Decimal   `json:"balance_after"`
	Description            string            `json:"description,omitempty"`
	RecipientAccountNumber string            `json:"recipient_account_number,omitempty"`
	RecipientAccountID     int64             `json:"recipient_account_id,omitempty"`
	Status                 TransactionStatus `json:"status,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
}

// HasTimestamp reports whether the backend supplied a usable created_at.
func (t Transaction) HasTimestamp() bool {
	return !t.CreatedAt.IsZero()
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats the backend is known to emit.
// The zero time is returned for empty or unparseable input.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Normalize folds the recipient variants into scalar fields and parses the
// enumerations and the timestamp.
func (r TransactionRecord) Normalize() Transaction {
	tx := Transaction{
		ID:                     r.ID,
		Account:                r.Account,
		Type:                   ParseTransactionType(r.TransactionType),
		RawType:                r.TransactionType,
		Amount:                 r.Amount,
		BalanceAfter:           r.BalanceAfter,
		Description:            r.Description,
		RecipientAccountNumber: strings.TrimSpace(r.RecipientAccountNumber),
		Status:                 TransactionStatus(strings.ToUpper(r.Status)),
		CreatedAt:              ParseTimestamp(r.CreatedAt),
	}
	if r.RecipientAccount != nil {
		if tx.RecipientAccountNumber == "" {
			tx.RecipientAccountNumber = r.RecipientAccount.AccountNumber
		}
		tx.RecipientAccountID = r.RecipientAccount.AccountID
	}
	return tx
}

// Sign is the direction of a transaction relative to the viewed account.
type Sign string

const (
	SignCredit Sign = "+"
	SignDebit  Sign = "-"
)

// TransactionView is one row of the rendered dashboard list.
type TransactionView struct {
	Transaction
	Sign          Sign   `json:"sign"`
	DisplayAmount string `json:"display_amount"` // e.g. "+100.00"
	DisplayType   string `json:"display_type"`   // raw type for unknown kinds
}

// TransactionKind selects a money movement endpoint.
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
	TransactionKindTransfer TransactionKind = "transfer"
)

// ParseTransactionKind validates a money movement kind.
func ParseTransactionKind(raw string) (TransactionKind, bool) {
	switch k := TransactionKind(strings.ToLower(strings.TrimSpace(raw))); k {
	case TransactionKindDeposit, TransactionKindWithdraw, TransactionKindTransfer:
		return k, true
	}
	return "", false
}

// TransactionForm is the payload of a deposit, withdrawal or transfer.
type TransactionForm struct {
	Amount                 decimal.Decimal `json:"amount" validate:"gt=0"`
	Description            string          `json:"description,omitempty"`
	RecipientAccountNumber string          `json:"recipient_account_number,omitempty"`
}
