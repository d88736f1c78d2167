package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
	"github.com/sbilibin2017/gw-bank-client/internal/validator"
)

//go:generate mockgen -source=dashboard.go -destination=mock_dashboard.go -package=handlers

// DashboardReader renders the current dashboard.
type DashboardReader interface {
	Dashboard() (*models.DashboardResponse, error)
}

// FilterSetter changes the dashboard filters.
type FilterSetter interface {
	SetFilters(days *int, txType *models.TransactionType) (*models.DashboardResponse, error)
}

// DashboardLoader reloads the account and its transactions from the bank.
type DashboardLoader interface {
	Load(ctx context.Context) error
	Dashboard() (*models.DashboardResponse, error)
}

// NewDashboardHandler returns an HTTP handler that renders the dashboard.
// @Summary Dashboard
// @Description Current account, active filters and the filtered transaction list. Served from the local snapshot.
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardResponse "Dashboard"
// @Failure 401 {object} models.ErrorResponse "Not logged in"
// @Router /dashboard [get]
func NewDashboardHandler(svc DashboardReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.Dashboard()
		if err != nil {
			writeError(w, err, "Could not render dashboard")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewFiltersHandler returns an HTTP handler that changes the dashboard filters.
// Omitted fields keep their current value.
// @Summary Set dashboard filters
// @Description Set the recency window in days (0 for all) and the transaction type ("" for all)
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body models.FiltersRequest true "Filters"
// @Success 200 {object} models.DashboardResponse "Filtered dashboard"
// @Failure 400 {object} models.ErrorResponse "Invalid filter"
// @Failure 401 {object} models.ErrorResponse "Not logged in"
// @Router /dashboard/filters [put]
func NewFiltersHandler(svc FilterSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.FiltersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
			return
		}
		if err := validator.Struct(req); err != nil {
			writeError(w, err, "")
			return
		}

		var txType *models.TransactionType
		if req.Type != nil {
			t, ok := models.ParseTypeFilter(*req.Type)
			if !ok {
				writeError(w, services.ErrInvalidTypeFilter, "")
				return
			}
			txType = &t
		}

		resp, err := svc.SetFilters(req.Days, txType)
		if err != nil {
			writeError(w, err, "Could not apply filters")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewRefreshHandler returns an HTTP handler that reloads the dashboard from the bank.
// @Summary Refresh dashboard
// @Description Reload the first account and replace its transaction snapshot. A refresh superseded by a newer one answers 409.
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardResponse "Refreshed dashboard"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Failure 404 {object} models.ErrorResponse "No account yet"
// @Failure 409 {object} models.ErrorResponse "Superseded by a newer refresh"
// @Failure 502 {object} models.ErrorResponse "Bank service unavailable"
// @Router /dashboard/refresh [post]
func NewRefreshHandler(svc DashboardLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Load(r.Context()); err != nil {
			writeError(w, err, "Could not load transactions")
			return
		}

		resp, err := svc.Dashboard()
		if err != nil {
			writeError(w, err, "Could not render dashboard")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
