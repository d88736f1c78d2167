package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

//go:generate mockgen -source=loans.go -destination=mock_loans.go -package=handlers

// LoanReader lists loans.
type LoanReader interface {
	List(ctx context.Context, status models.LoanStatus) (*models.LoansResponse, error)
}

// LoanApplier requests loans.
type LoanApplier interface {
	Apply(ctx context.Context, app models.LoanApplication) (*models.Loan, error)
}

// LoanPayer pays loan installments.
type LoanPayer interface {
	Pay(ctx context.Context, loanID int64, payment models.LoanPayment) error
}

// NewLoansHandler returns an HTTP handler listing the loans of the user.
// @Summary List loans
// @Description Loans of the user, optionally only those with the given status
// @Tags loans
// @Produce json
// @Param status query string false "PENDING, ACCEPTED, REJECTED or PAID"
// @Success 200 {object} models.LoansResponse "Loans"
// @Failure 400 {object} models.ErrorResponse "Unknown status"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Router /loans [get]
func NewLoansHandler(svc LoanReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := models.LoanStatusAny
		if raw := r.URL.Query().Get("status"); raw != "" {
			status = models.ParseLoanStatus(raw)
			if status == models.LoanStatusOther {
				writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown loan status"})
				return
			}
		}

		resp, err := svc.List(r.Context(), status)
		if err != nil {
			writeError(w, err, "Could not load loans")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewApplyLoanHandler returns an HTTP handler for loan applications.
// @Summary Apply for a loan
// @Description Request a loan on the current account. Amount 10000-5000000, rate 5-25, term 6-120 months.
// @Tags loans
// @Accept json
// @Produce json
// @Param request body models.LoanApplication true "Loan Application"
// @Success 201 {object} models.Loan "Loan requested"
// @Failure 400 {object} models.ErrorResponse "Out of range or rejected by the bank"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Failure 404 {object} models.ErrorResponse "No account yet"
// @Router /loans [post]
func NewApplyLoanHandler(svc LoanApplier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoanApplication
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
			return
		}

		loan, err := svc.Apply(r.Context(), req)
		if err != nil {
			writeError(w, err, "Loan application failed")
			return
		}
		writeJSON(w, http.StatusCreated, loan)
	}
}

// NewPayLoanHandler returns an HTTP handler for loan installments.
// @Summary Pay a loan
// @Description Pay an installment of a loan from the current account
// @Tags loans
// @Accept json
// @Produce json
// @Param loanID path int true "Loan ID"
// @Param request body models.LoanPayment true "Payment"
// @Success 200 {object} models.MessageResponse "Payment successful"
// @Failure 400 {object} models.ErrorResponse "Invalid amount or rejected by the bank"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Router /loans/{loanID}/payments [post]
func NewPayLoanHandler(svc LoanPayer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loanID, err := strconv.ParseInt(chi.URLParam(r, "loanID"), 10, 64)
		if err != nil || loanID <= 0 {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid loan id"})
			return
		}

		var req models.LoanPayment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
			return
		}

		if err := svc.Pay(r.Context(), loanID, req); err != nil {
			writeError(w, err, "Payment failed")
			return
		}
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Payment successful"})
	}
}
