package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

//go:generate mockgen -source=transaction.go -destination=mock_transaction.go -package=handlers

// TransactionWriter defines the interface that the service must implement.
type TransactionWriter interface {
	SubmitTransaction(ctx context.Context, kind models.TransactionKind, form models.TransactionForm) (*models.TransactionRecord, error)
}

// TransactionResponse represents a successful money movement
// swagger:model TransactionResponse
type TransactionResponse struct {
	// Success message
	// default: Transaction successful
	Message string `json:"message"`

	// Transaction as recorded by the bank
	Transaction models.Transaction `json:"transaction"`
}

// NewTransactionHandler returns an HTTP handler for deposits, withdrawals and transfers.
// @Summary Move money
// @Description Deposit to, withdraw from or transfer out of the current account, then reload the dashboard
// @Tags transactions
// @Accept json
// @Produce json
// @Param kind path string true "deposit, withdraw or transfer"
// @Param request body models.TransactionForm true "Transaction Request"
// @Success 200 {object} handlers.TransactionResponse "Transaction successful"
// @Failure 400 {object} models.ErrorResponse "Invalid amount, missing recipient or rejected by the bank"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Failure 404 {object} models.ErrorResponse "Unknown kind or no account yet"
// @Router /transactions/{kind} [post]
func NewTransactionHandler(svc TransactionWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := models.ParseTransactionKind(chi.URLParam(r, "kind"))
		if !ok {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "unknown transaction kind"})
			return
		}

		var req models.TransactionForm
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
			return
		}

		record, err := svc.SubmitTransaction(r.Context(), kind, req)
		if err != nil {
			writeError(w, err, "Transaction failed")
			return
		}

		writeJSON(w, http.StatusOK, TransactionResponse{
			Message:     "Transaction successful",
			Transaction: record.Normalize(),
		})
	}
}
