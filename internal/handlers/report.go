package handlers

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

//go:generate mockgen -source=report.go -destination=mock_report.go -package=handlers

// ReportRunner generates statements.
type ReportRunner interface {
	Run(ctx context.Context) (*models.Artifact, error)
}

// ReportStatuser exposes the progress of the statement job.
type ReportStatuser interface {
	Status() models.ReportSnapshot
}

// ReportLocationResponse is returned when the bank only announces where the statement is
// swagger:model ReportLocationResponse
type ReportLocationResponse struct {
	// Download location
	// default: https://bank.example/media/statement.pdf
	Location string `json:"location"`
}

// NewReportHandler returns an HTTP handler that generates a statement.
// The job is polled until it finishes or the client goes away.
// @Summary Generate statement
// @Description Submit a statement job and wait for it. The document is returned as is, or its location when the bank only announces one.
// @Tags reports
// @Produce application/pdf
// @Produce json
// @Success 200 {file} file "Statement document"
// @Success 202 {object} handlers.ReportLocationResponse "Statement location"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Failure 502 {object} models.ErrorResponse "Report generation failed"
// @Failure 504 {object} models.ErrorResponse "Report generation timed out"
// @Router /reports [post]
func NewReportHandler(svc ReportRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifact, err := svc.Run(r.Context())
		if err != nil {
			if r.Context().Err() != nil {
				logger.Log.Infow("report request abandoned by client", "err", err)
				return
			}
			writeError(w, err, "Report generation failed")
			return
		}

		if artifact.Data == nil {
			writeJSON(w, http.StatusAccepted, ReportLocationResponse{Location: artifact.Location})
			return
		}

		contentType := artifact.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
		if artifact.Filename != "" {
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifact.Data)
	}
}

// NewReportStatusHandler returns an HTTP handler describing the statement job.
// @Summary Statement job status
// @Description State, task id and poll count of the current or last statement job
// @Tags reports
// @Produce json
// @Success 200 {object} models.ReportSnapshot "Job status"
// @Router /reports/status [get]
func NewReportStatusHandler(svc ReportStatuser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	}
}
