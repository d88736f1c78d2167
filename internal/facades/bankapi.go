// Package facades talks to the bank backend over its REST API.
package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/requestid"
)

// maxErrorBody bounds how much of a rejection body is read for its message.
const maxErrorBody = 64 << 10

// BankAPIFacade implements the backend readers and writers of the services
// over HTTP.
type BankAPIFacade struct {
	baseURL    string
	scheme     string
	httpClient *http.Client
}

// NewBankAPIFacade creates a facade for the API rooted at baseURL. scheme is
// the prefix of the Authorization header, "Token" when empty.
func NewBankAPIFacade(baseURL, scheme string, httpClient *http.Client) *BankAPIFacade {
	if scheme == "" {
		scheme = "Token"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BankAPIFacade{
		baseURL:    strings.TrimRight(baseURL, "/"),
		scheme:     scheme,
		httpClient: httpClient,
	}
}

// Register creates a user.
func (f *BankAPIFacade) Register(ctx context.Context, reg models.Registration) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := f.call(ctx, http.MethodPost, "auth/register/", "", reg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login exchanges username and password for a credential.
func (f *BankAPIFacade) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := f.call(ctx, http.MethodPost, "auth/login/", "", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout invalidates credential on the backend.
func (f *BankAPIFacade) Logout(ctx context.Context, credential string) error {
	return f.call(ctx, http.MethodPost, "auth/logout/", credential, nil, nil)
}

// Profile returns the signed-in user.
func (f *BankAPIFacade) Profile(ctx context.Context, credential string) (*models.Profile, error) {
	var profile models.Profile
	if err := f.call(ctx, http.MethodGet, "auth/profile/", credential, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListAccounts returns the accounts of the user in backend order.
func (f *BankAPIFacade) ListAccounts(ctx context.Context, credential string) ([]models.Account, error) {
	var accounts []models.Account
	if err := f.callList(ctx, "accounts/", credential, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount opens an account.
func (f *BankAPIFacade) CreateAccount(ctx context.Context, credential string, req models.NewAccountRequest) (*models.Account, error) {
	var account models.Account
	if err := f.call(ctx, http.MethodPost, "accounts/", credential, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ListTransactions returns the transactions of an account in backend order.
func (f *BankAPIFacade) ListTransactions(ctx context.Context, credential string, accountID int64) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	path := "accounts/" + strconv.FormatInt(accountID, 10) + "/transactions/"
	if err := f.callList(ctx, path, credential, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SubmitTransaction posts a deposit, withdrawal or transfer.
func (f *BankAPIFacade) SubmitTransaction(ctx context.Context, credential string, accountID int64, kind models.TransactionKind, form models.TransactionForm) (*models.TransactionRecord, error) {
	body := map[string]interface{}{"amount": form.Amount}
	if form.Description != "" {
		body["description"] = form.Description
	}
	if kind == models.TransactionKindTransfer {
		body["recipient_account_number"] = form.RecipientAccountNumber
	}

	var record models.TransactionRecord
	path := "accounts/" + strconv.FormatInt(accountID, 10) + "/" + string(kind) + "/"
	if err := f.call(ctx, http.MethodPost, path, credential, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListLoans returns the loans of all accounts of the user.
func (f *BankAPIFacade) ListLoans(ctx context.Context, credential string) ([]models.Loan, error) {
	var loans []models.Loan
	if err := f.callList(ctx, "loans/", credential, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// ApplyLoan requests a loan for an account.
func (f *BankAPIFacade) ApplyLoan(ctx context.Context, credential string, accountID int64, app models.LoanApplication) (*models.Loan, error) {
	var loan models.Loan
	path := "accounts/" + strconv.FormatInt(accountID, 10) + "/loan/"
	if err := f.call(ctx, http.MethodPost, path, credential, app, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// PayLoan pays an installment of a loan.
func (f *BankAPIFacade) PayLoan(ctx context.Context, credential string, accountID, loanID int64, payment models.LoanPayment) error {
	path := "accounts/" + strconv.FormatInt(accountID, 10) + "/loan/" + strconv.FormatInt(loanID, 10) + "/payment/"
	return f.call(ctx, http.MethodPost, path, credential, payment, nil)
}

// SubmitReport starts a statement job.
func (f *BankAPIFacade) SubmitReport(ctx context.Context, credential string) (*models.ReportTask, error) {
	var task models.ReportTask
	if err := f.call(ctx, http.MethodPost, "reports/statement/", credential, struct{}{}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CheckReport asks for the outcome of a statement job. A body with a document
// media type is the statement itself; anything else is parsed as a status.
func (f *BankAPIFacade) CheckReport(ctx context.Context, credential, taskID string) (*models.ReportPoll, error) {
	path := "reports/statement/" + url.PathEscape(taskID) + "/"
	resp, err := f.do(ctx, http.MethodGet, path, credential, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading report: %w", models.ErrTransport, err)
	}

	// Only a document media type marks the artifact; untyped, plain text and
	// HTML bodies carry the job status.
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if isDocument(mediaType) {
		return &models.ReportPoll{Artifact: &models.Artifact{
			ContentType: mediaType,
			Filename:    attachmentName(resp.Header.Get("Content-Disposition")),
			Data:        data,
		}}, nil
	}

	var body struct {
		Status      string `json:"status"`
		Location    string `json:"location"`
		DownloadURL string `json:"download_url"`
		URL         string `json:"url"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrMalformedResponse, path, err)
	}

	poll := &models.ReportPoll{Status: body.Status, Location: body.Location}
	for _, alt := range []string{body.DownloadURL, body.URL} {
		if poll.Location == "" {
			poll.Location = alt
		}
	}
	return poll, nil
}

func (f *BankAPIFacade) call(ctx context.Context, method, path, credential string, in, out interface{}) error {
	resp, err := f.do(ctx, method, path, credential, in)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrMalformedResponse, path, err)
	}
	return nil
}

// callList decodes a list endpoint, accepting both a bare array and a
// paginated {"results": [...]} envelope.
func (f *BankAPIFacade) callList(ctx context.Context, path, credential string, out interface{}) error {
	var raw json.RawMessage
	if err := f.call(ctx, http.MethodGet, path, credential, nil, &raw); err != nil {
		return err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var page struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(raw, &page); err != nil || page.Results == nil {
			return fmt.Errorf("%w: %s: expected a list", models.ErrMalformedResponse, path)
		}
		raw = page.Results
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrMalformedResponse, path, err)
	}
	return nil
}

func (f *BankAPIFacade) do(ctx context.Context, method, path, credential string, in interface{}) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.baseURL+"/"+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, requestid.Ensure(ctx))
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", f.scheme+" "+credential)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.Log.Errorw("bank backend request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", models.ErrTransport, method, path, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &models.APIError{
		StatusCode: resp.StatusCode,
		Message:    flattenMessages(data),
	}
	logger.Log.Warnw("bank backend rejected request",
		"method", resp.Request.Method, "path", resp.Request.URL.Path,
		"status", resp.StatusCode, "message", apiErr.Message)
	return apiErr
}

// flattenMessages joins every scalar of a JSON error body in document order,
// so {"amount": ["too low"], "error": "x"} reads "too low, x".
func flattenMessages(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var parts []string
	if err := collectScalars(dec, &parts); err != nil {
		text := string(data)
		if len(text) > 200 {
			text = text[:200]
		}
		return text
	}
	return strings.Join(parts, ", ")
}

func collectScalars(dec *json.Decoder, parts *[]string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			for dec.More() {
				if _, err := dec.Token(); err != nil {
					return err
				}
				if err := collectScalars(dec, parts); err != nil {
					return err
				}
			}
		case '[':
			for dec.More() {
				if err := collectScalars(dec, parts); err != nil {
					return err
				}
			}
		}
		_, err := dec.Token()
		return err
	case string:
		if v != "" {
			*parts = append(*parts, v)
		}
	case json.Number:
		*parts = append(*parts, v.String())
	case bool:
		*parts = append(*parts, strconv.FormatBool(v))
	}
	return nil
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isDocument(mediaType string) bool {
	switch {
	case mediaType == "", isJSON(mediaType):
		return false
	case mediaType == "text/plain", mediaType == "text/html":
		return false
	}
	return true
}

// attachmentName returns the base name suggested by a Content-Disposition
// header, or "" when there is none usable.
func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	name := path.Base(strings.ReplaceAll(params["filename"], "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return ""
	}
	return name
}
