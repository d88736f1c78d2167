package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-bank-client/internal/config"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

const validToken = "tok-alice"

// --- Fake bank backend ---
type fakeBank struct {
	server      *httptest.Server
	reportPolls int32
	deposits    int32
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newFakeBank(t *testing.T) *fakeBank {
	t.Helper()
	bank := &fakeBank{}

	recent := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	old := time.Now().AddDate(0, 0, -40).UTC().Format(time.RFC3339)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			var creds models.Credentials
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Username != "alice" || creds.Password != "s3cret" {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{"non_field_errors": []string{"Unable to log in with provided credentials."}})
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"user":  map[string]interface{}{"id": 1, "username": "alice", "email": "alice@example.com"},
				"token": validToken,
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if r.Header.Get("Authorization") != "Token "+validToken {
						writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
						return
					}
					next.ServeHTTP(w, r)
				})
			})

			r.Post("/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
			})
			r.Get("/auth/profile/", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, models.Profile{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice"})
			})
			r.Get("/accounts/", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]interface{}{
					{"id": 1, "account_number": "100000000001", "account_type": "SAVINGS", "balance": "1475.00", "currency": "NPR"},
				})
			})
			r.Get("/accounts/1/transactions/", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]interface{}{"results": []map[string]interface{}{
					{"id": 10, "account": 1, "transaction_type": "DEPOSIT", "amount": "500.00", "description": "salary", "created_at": recent},
					{"id": 11, "account": 1, "transaction_type": "TRANSFER", "amount": "20.00", "recipient_account": map[string]string{"account_number": "100000000002"}, "created_at": recent},
					{"id": 12, "account": 1, "transaction_type": "WITHDRAWAL", "amount": "5.00", "created_at": old},
				}})
			})
			r.Post("/accounts/1/deposit/", func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&bank.deposits, 1)
				writeJSON(w, http.StatusCreated, map[string]interface{}{"id": 13, "account": 1, "transaction_type": "DEPOSIT", "amount": "100.00"})
			})
			r.Post("/accounts/1/withdraw/", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{"amount": []string{"Insufficient funds"}})
			})
			r.Get("/loans/", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]interface{}{
					{"loan_id": 1, "status": "PENDING", "loan_amount": "50000.00", "interest_rate": "12.50", "loan_term_months": 24},
					{"loan_id": 2, "status": "ACCEPTED", "loan_amount": "20000.00", "interest_rate": "8.00", "loan_term_months": 12},
				})
			})
			r.Post("/reports/statement/", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusAccepted, map[string]string{"task_id": "job-1"})
			})
			r.Get("/reports/statement/job-1/", func(w http.ResponseWriter, r *http.Request) {
				if atomic.AddInt32(&bank.reportPolls, 1) < 3 {
					writeJSON(w, http.StatusOK, map[string]string{"status": "pending"})
					return
				}
				w.Header().Set("Content-Type", "application/pdf")
				w.Header().Set("Content-Disposition", `attachment; filename="statement-1.pdf"`)
				_, _ = w.Write([]byte("%PDF-1.4 statement"))
			})
		})
	})

	bank.server = httptest.NewServer(r)
	t.Cleanup(bank.server.Close)
	return bank
}

// run executes bankctl against bank with the given profile file.
func run(t *testing.T, bank *fakeBank, profile, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REPORT_POLL_INTERVAL", "5ms")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--profile", profile, "--api-url", bank.server.URL + "/api"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func loggedInProfile(t *testing.T, token string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ProfileFileName)
	require.NoError(t, config.SaveProfile(path, &config.Profile{Username: "alice", Token: token}))
	return path
}

// --- Tests ---
func TestLoginAndLogout(t *testing.T) {
	bank := newFakeBank(t)
	profile := filepath.Join(t.TempDir(), config.ProfileFileName)

	out, err := run(t, bank, profile, "s3cret\n", "login", "--username", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice")

	p, err := config.LoadProfile(profile)
	require.NoError(t, err)
	assert.Equal(t, validToken, p.Token)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, bank.server.URL+"/api", p.APIURL)

	out, err = run(t, bank, profile, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "alice <alice@example.com>")
	assert.Contains(t, out, "token without expiry")

	out, err = run(t, bank, profile, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	p, err = config.LoadProfile(profile)
	require.NoError(t, err)
	assert.Empty(t, p.Token)
	assert.Equal(t, "alice", p.Username)

	_, err = run(t, bank, profile, "", "transactions")
	assert.ErrorIs(t, err, services.ErrNotAuthenticated)
	assert.Equal(t, "not logged in, run `bankctl login`", Notice(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	bank := newFakeBank(t)
	profile := filepath.Join(t.TempDir(), config.ProfileFileName)

	_, err := run(t, bank, profile, "", "login", "-u", "alice", "-p", "nope")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	p, err := config.LoadProfile(profile)
	require.NoError(t, err)
	assert.Empty(t, p.Token)
}

func TestTransactions(t *testing.T) {
	bank := newFakeBank(t)
	profile := loggedInProfile(t, validToken)

	tests := []struct {
		name       string
		args       []string
		contains   []string
		notContain []string
	}{
		{
			name:       "default window",
			args:       []string{"transactions"},
			contains:   []string{"Account 100000000001", "last 7 days", "+500.00", "-20.00"},
			notContain: []string{"-5.00"},
		},
		{
			name:     "all history",
			args:     []string{"transactions", "--days", "0"},
			contains: []string{"all history", "+500.00", "-20.00", "-5.00"},
		},
		{
			name:       "deposits only",
			args:       []string{"tx", "-d", "0", "-t", "deposit"},
			contains:   []string{"DEPOSIT", "+500.00"},
			notContain: []string{"-20.00", "-5.00"},
		},
		{
			name:     "no match",
			args:     []string{"transactions", "--type", "withdrawal"},
			contains: []string{"No transactions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, bank, profile, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, out, s)
			}
		})
	}

	_, err := run(t, bank, profile, "", "transactions", "--type", "refund")
	assert.ErrorIs(t, err, services.ErrInvalidTypeFilter)

	_, err = run(t, bank, profile, "", "transactions", "--days", "-1")
	assert.ErrorIs(t, err, services.ErrInvalidRecencyWindow)
}

func TestMoneyMovement(t *testing.T) {
	bank := newFakeBank(t)
	profile := loggedInProfile(t, validToken)

	out, err := run(t, bank, profile, "", "deposit", "100", "--description", "cash")
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction successful (id 13)")
	assert.Equal(t, int32(1), atomic.LoadInt32(&bank.deposits))

	_, err = run(t, bank, profile, "", "withdraw", "1000000")
	require.Error(t, err)
	assert.Equal(t, "Insufficient funds", Notice(err))

	_, err = run(t, bank, profile, "", "deposit", "0")
	require.Error(t, err)
	assert.Contains(t, Notice(err), "amount")

	_, err = run(t, bank, profile, "", "transfer", "10")
	assert.Error(t, err)

	_, err = run(t, bank, profile, "", "deposit", "ten")
	assert.EqualError(t, err, `invalid amount "ten"`)
}

func TestOverview(t *testing.T) {
	bank := newFakeBank(t)
	profile := loggedInProfile(t, validToken)

	out, err := run(t, bank, profile, "", "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "User:     alice")
	assert.Contains(t, out, "Account:  100000000001 (SAVINGS)")
	assert.Contains(t, out, "Balance:  1475.00 NPR")
	assert.Contains(t, out, "Loans:    2 (1 pending)")
}

func TestLoansList(t *testing.T) {
	bank := newFakeBank(t)
	profile := loggedInProfile(t, validToken)

	out, err := run(t, bank, profile, "", "loans", "list", "--status", "accepted")
	require.NoError(t, err)
	assert.Contains(t, out, "ACCEPTED")
	assert.NotContains(t, out, "PENDING")

	_, err = run(t, bank, profile, "", "loans", "list", "--status", "frozen")
	assert.EqualError(t, err, `unknown loan status "frozen"`)

	_, err = run(t, bank, profile, "", "loans", "apply", "--amount", "500", "--rate", "10")
	require.Error(t, err)
	assert.Contains(t, Notice(err), "loan_amount must be at least 10000")
}

func TestReport(t *testing.T) {
	bank := newFakeBank(t)
	profile := loggedInProfile(t, validToken)
	dest := filepath.Join(t.TempDir(), "out.pdf")

	out, err := run(t, bank, profile, "", "report", "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Statement saved to %s", dest))
	assert.Equal(t, int32(3), atomic.LoadInt32(&bank.reportPolls))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 statement", string(data))
}

func TestReport_BankFilename(t *testing.T) {
	bank := newFakeBank(t)
	profile := loggedInProfile(t, validToken)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := run(t, bank, profile, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Statement saved to statement-1.pdf")

	_, err = os.Stat(filepath.Join(dir, "statement-1.pdf"))
	assert.NoError(t, err)
}

func TestStatementFilename(t *testing.T) {
	tests := []struct {
		suggested string
		want      string
	}{
		{suggested: "statement-1.pdf", want: "statement-1.pdf"},
		{suggested: "", want: "statement.pdf"},
		{suggested: "../../tmp/pwned.pdf", want: "pwned.pdf"},
		{suggested: "/etc/cron.d/job", want: "job"},
		{suggested: `..\..\x.pdf`, want: "x.pdf"},
		{suggested: "..", want: "statement.pdf"},
		{suggested: ".", want: "statement.pdf"},
		{suggested: "/", want: "statement.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.suggested, func(t *testing.T) {
			assert.Equal(t, tt.want, statementFilename(tt.suggested))
		})
	}
}

func TestExpiredSession(t *testing.T) {
	bank := newFakeBank(t)
	profile := loggedInProfile(t, "revoked")

	_, err := run(t, bank, profile, "", "overview")
	assert.ErrorIs(t, err, services.ErrSessionExpired)
	assert.Equal(t, "session expired, run `bankctl login` again", Notice(err))

	p, err := config.LoadProfile(profile)
	require.NoError(t, err)
	assert.Empty(t, p.Token)
}
