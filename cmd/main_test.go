package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-bank-client/internal/config"
	"github.com/sbilibin2017/gw-bank-client/internal/facades"
	"github.com/sbilibin2017/gw-bank-client/internal/jwt"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/repositories"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

// newTestGateway wires the gateway against a fake bank backend with the
// credential kept in a temporary profile file.
func newTestGateway(t *testing.T) http.Handler {
	t.Helper()

	bank := chi.NewRouter()
	bank.Route("/api", func(r chi.Router) {
		r.Post("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"user":  map[string]interface{}{"id": 1, "username": "alice"},
				"token": "tok",
			})
		})
		r.Get("/accounts/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"account_number":"100000000001","account_type":"SAVINGS","balance":"10.00","currency":"NPR"}]`))
		})
		r.Get("/accounts/1/transactions/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":5,"account":1,"transaction_type":"DEPOSIT","amount":"10.00","created_at":"` +
				time.Now().UTC().Format(time.RFC3339) + `"}]`))
		})
	})
	server := httptest.NewServer(bank)
	t.Cleanup(server.Close)

	api := facades.NewBankAPIFacade(server.URL+"/api", "Token", server.Client())
	store := repositories.NewCredentialFileRepository(filepath.Join(t.TempDir(), config.ProfileFileName))
	auth := services.NewAuthService(api, store, jwt.New(), models.DefaultRecencyDays)

	return newRouter(&gateway{
		auth:      auth,
		dashboard: services.NewDashboardService(api, auth),
		loans:     services.NewLoanService(api, auth),
		reports:   services.NewReportPoller(api, auth, nil, services.ReportOptions{}),
	}, "localhost:8080")
}

func TestRouter(t *testing.T) {
	h := newTestGateway(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
		return w
	}

	w := do(http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(http.MethodPost, "/login", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodPost, "/dashboard/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	var dash models.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	require.Len(t, dash.Transactions, 1)
	assert.Equal(t, "+10.00", dash.Transactions[0].DisplayAmount)

	w = do(http.MethodPut, "/dashboard/filters", `{"type":"TRANSFER"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.True(t, dash.Empty)
	assert.Equal(t, "No transactions", dash.Message)

	w = do(http.MethodGet, "/reports/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"idle","polls":0,"waits":0,"started_at":"0001-01-01T00:00:00Z"}`, w.Body.String())

	w = do(http.MethodGet, "/swagger/index.html", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

// ------------------ Full integration test ------------------
func TestRun_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: redisReq, Started: true})
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	defer func() { _ = redisContainer.Terminate(ctx) }()

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, "6379")

	cfg := &config.Config{
		AppHost:            "127.0.0.1",
		AppPort:            "8086",
		LogLevel:           "debug",
		BankAPIURL:         "http://127.0.0.1:1/api",
		RequestTimeout:     time.Second,
		RedisHost:          redisHost,
		RedisPort:          redisPort.Int(),
		RedisPoolSize:      10,
		RedisMinIdleConns:  2,
		CredentialKey:      "test",
		ReportPollInterval: time.Second,
		DefaultRecencyDays: models.DefaultRecencyDays,
	}

	testCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(testCtx, cfg)
	}()

	select {
	case <-time.After(15 * time.Second):
		t.Fatal("test timed out")
	case err := <-errCh:
		require.NoError(t, err)
	}
}
