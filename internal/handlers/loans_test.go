package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
	"github.com/sbilibin2017/gw-bank-client/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoansHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoanReader(ctrl)

	tests := []struct {
		name         string
		query        string
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "all",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), models.LoanStatusAny).
					Return(&models.LoansResponse{Loans: []models.Loan{{LoanID: 1}, {LoanID: 2}}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:  "pending only",
			query: "?status=pending",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), models.LoanStatusPending).
					Return(&models.LoansResponse{Status: models.LoanStatusPending, Loans: []models.Loan{}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unknown status",
			query:        "?status=frozen",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "session expired",
			query: "",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), models.LoanStatusAny).Return(nil, services.ErrSessionExpired)
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewLoansHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/loans"+tt.query, nil))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestApplyLoanHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoanApplier(ctrl)

	t.Run("accepted for review", func(t *testing.T) {
		mockSvc.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, app models.LoanApplication) (*models.Loan, error) {
				assert.True(t, decimal.NewFromInt(50000).Equal(app.LoanAmount))
				assert.Equal(t, 24, app.LoanTermMonths)
				return &models.Loan{LoanID: 9, Status: models.LoanStatusPending}, nil
			})

		body := `{"loan_amount":"50000","interest_rate":"12.5","loan_term_months":24,"purpose":"Car"}`
		w := httptest.NewRecorder()
		NewApplyLoanHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(body)))

		require.Equal(t, http.StatusCreated, w.Code)
		var loan models.Loan
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loan))
		assert.Equal(t, int64(9), loan.LoanID)
		assert.Equal(t, models.LoanStatusPending, loan.Status)
	})

	t.Run("out of range", func(t *testing.T) {
		mockSvc.EXPECT().Apply(gomock.Any(), gomock.Any()).
			Return(nil, &validator.Error{Fields: []string{"loan_amount must be at least 10000"}})

		w := httptest.NewRecorder()
		NewApplyLoanHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(`{"loan_amount":5}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid input: loan_amount must be at least 10000"}`, w.Body.String())
	})
}

func TestPayLoanHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoanPayer(ctrl)

	r := chi.NewRouter()
	r.Post("/loans/{loanID}/payments", NewPayLoanHandler(mockSvc))

	mockSvc.EXPECT().Pay(gomock.Any(), int64(3), gomock.Any()).Return(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans/3/payments", bytes.NewBufferString(`{"amount":"2500"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Payment successful"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans/abc/payments", bytes.NewBufferString(`{"amount":"2500"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockSvc.EXPECT().Pay(gomock.Any(), int64(4), gomock.Any()).Return(services.ErrNoAccount)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans/4/payments", bytes.NewBufferString(`{"amount":"2500"}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
