package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccountHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAccountCreator(ctrl)

	tests := []struct {
		name         string
		body         string
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "created",
			body: `{"account_type":"savings"}`,
			mockSetup: func() {
				mockSvc.EXPECT().CreateAccount(gomock.Any(), "savings", "").
					Return(&models.Account{ID: 3, AccountNumber: "100000000003", AccountType: models.AccountTypeSavings, Currency: "NPR"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "unknown type",
			body: `{"account_type":"crypto","currency":"BTC"}`,
			mockSetup: func() {
				mockSvc.EXPECT().CreateAccount(gomock.Any(), "crypto", "BTC").Return(nil, services.ErrInvalidAccountType)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid JSON",
			body:         `[`,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewCreateAccountHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var account models.Account
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
				assert.Equal(t, "100000000003", account.AccountNumber)
			}
		})
	}
}

func TestProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockProfileReader(ctrl)

	mockSvc.EXPECT().Profile(gomock.Any()).Return(&models.ProfileResponse{
		Profile: models.Profile{Username: "alice", Email: "alice@example.com"},
	}, nil)

	w := httptest.NewRecorder()
	NewProfileHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Profile.Username)
	assert.Nil(t, resp.Account)

	mockSvc.EXPECT().Profile(gomock.Any()).Return(nil, services.ErrSessionExpired)
	w = httptest.NewRecorder()
	NewProfileHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Session expired, please log in again"}`, w.Body.String())
}
