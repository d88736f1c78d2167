package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/config"
	"github.com/sbilibin2017/gw-bank-client/internal/facades"
	"github.com/sbilibin2017/gw-bank-client/internal/jwt"
	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/repositories"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

// options are the persistent flags of bankctl.
type options struct {
	profilePath string
	envFile     string
	apiURL      string
	verbose     bool
}

// app is the service graph of one bankctl invocation.
type app struct {
	profilePath string
	profile     *config.Profile
	apiURL      string

	inspector *jwt.Inspector
	auth      *services.AuthService
	dashboard *services.DashboardService
	loans     *services.LoanService
	reports   *services.ReportPoller
}

func newApp(ctx context.Context, opts *options) (*app, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := "error"
	if opts.verbose {
		level = "debug"
	}
	if err := logger.Initialize(level, "console"); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	profile, err := config.LoadProfile(opts.profilePath)
	if err != nil {
		return nil, err
	}

	apiURL := cfg.BankAPIURL
	switch {
	case opts.apiURL != "":
		apiURL = opts.apiURL
	case profile.APIURL != "":
		apiURL = profile.APIURL
	}

	api := facades.NewBankAPIFacade(apiURL, cfg.BankAuthScheme, &http.Client{Timeout: cfg.RequestTimeout})
	store := repositories.NewCredentialFileRepository(opts.profilePath)
	inspector := jwt.New()

	auth := services.NewAuthService(api, store, inspector, cfg.DefaultRecencyDays)
	if _, err := auth.Restore(ctx); err != nil {
		return nil, err
	}

	return &app{
		profilePath: opts.profilePath,
		profile:     profile,
		apiURL:      apiURL,
		inspector:   inspector,
		auth:        auth,
		dashboard:   services.NewDashboardService(api, auth),
		loans:       services.NewLoanService(api, auth),
		reports: services.NewReportPoller(api, auth, nil, services.ReportOptions{
			Interval:    cfg.ReportPollInterval,
			MaxAttempts: cfg.ReportMaxAttempts,
			Deadline:    cfg.ReportDeadline,
		}),
	}, nil
}

// remember stores the username and API URL of a successful login next to
// the credential.
func (a *app) remember(username string) error {
	p, err := config.LoadProfile(a.profilePath)
	if err != nil {
		return err
	}
	p.Username = username
	p.APIURL = a.apiURL
	return config.SaveProfile(a.profilePath, p)
}
