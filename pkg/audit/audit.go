// Package audit runs the InfluxDB connectivity checks in order.
//
// Configuration problems and an unreachable port end the run early and fail
// it. CORS, health and container findings are advisory: they are logged but a
// run that reaches them always completes successfully.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/Porizovatel/kulda/pkg/config"
	"github.com/Porizovatel/kulda/pkg/envfile"
	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/netutil"
	"github.com/Porizovatel/kulda/pkg/provider"
	"github.com/Porizovatel/kulda/pkg/utils"
)

type Auditor struct {
	settings *config.Settings
	factory  Factory
}

type Option func(*Auditor)

// WithFactory replaces the checks built from settings.
func WithFactory(factory Factory) Option {
	return func(a *Auditor) {
		a.factory = factory
	}
}

func New(settings *config.Settings, opts ...Option) *Auditor {
	a := &Auditor{settings: settings}
	for _, opt := range opts {
		opt(a)
	}
	if a.factory == nil {
		a.factory = NewFactory(settings)
	}
	return a
}

// Run performs one pass of the checks. report.Success tells whether the run
// completed.
func (a *Auditor) Run(ctx context.Context) (report *health.Report) {
	report = &health.Report{RunID: uuid.NewString()}
	log := utils.ContextLogger(ctx, slog.String("context", "audit"))

	log.Info("Starting InfluxDB connection check", slog.String("run", report.RunID))

	values, err := envfile.Load(ctx, a.settings.EnvFile, a.settings.MalformedLines)
	if err != nil {
		log.Error("Failed to load environment variables")
		return report
	}

	rawURL, hasURL := values.Get(a.settings.URLKey)
	token, hasToken := values.Get(a.settings.TokenKey)
	if !hasURL || !hasToken {
		log.Error(fmt.Sprintf("Missing required environment variables (%s or %s)", a.settings.URLKey, a.settings.TokenKey))
		return report
	}

	if !netutil.ValidURL(rawURL) {
		log.Error(fmt.Sprintf("Invalid InfluxDB URL format: %s", rawURL))
		return report
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		log.Error(fmt.Sprintf("Invalid InfluxDB URL format: %s", rawURL))
		return report
	}
	host, port, err := netutil.HostPort(target, a.settings.DefaultPort)
	if err != nil {
		log.Error(fmt.Sprintf("Invalid InfluxDB URL: %v", err))
		return report
	}

	if !a.check(ctx, report, a.factory.Port(host, port)) {
		return report
	}

	if !a.check(ctx, report, a.factory.CORS(rawURL, token)) {
		log.Warn("CORS configuration may not be properly set")
	}

	if instance := a.factory.Health(rawURL, token); instance != nil {
		if !a.check(ctx, report, instance) {
			log.Warn("InfluxDB did not report itself healthy")
		}
	}

	a.check(ctx, report, a.factory.Container())

	log.Info("InfluxDB connection check completed", slog.String("run", report.RunID))
	report.Success = true
	return report
}

// check sets up and runs instance, recording the response in report.
func (a *Auditor) check(ctx context.Context, report *health.Report, instance provider.Instance) bool {
	if err := instance.Setup(); err != nil {
		err = provider.NewInstanceError(instance.GetType(), instance.GetName(), err)
		utils.ContextLogger(ctx).Error("invalid check", "error", err)
		report.Add((&health.Response{Type: instance.GetType(), Name: instance.GetName()}).Unhealthy(err.Error()))
		return false
	}

	response := provider.GetHealthWithDuration(ctx, instance)
	report.Add(response)
	return response.IsHealthy()
}
