package root

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	slogctx "github.com/veqryn/slog-context"

	"github.com/Porizovatel/kulda/pkg/audit"
	"github.com/Porizovatel/kulda/pkg/commands/flags"
	"github.com/Porizovatel/kulda/pkg/config"
	"github.com/Porizovatel/kulda/pkg/logging"
	"github.com/Porizovatel/kulda/pkg/metrics"
)

// ErrCheckFailed is returned when the run stops before completing.
var ErrCheckFailed = errors.New("influxdb check failed")

type options struct {
	viper  *viper.Viper
	auditOpts []audit.Option
}

type Option func(*options)

// WithAuditOptions passes opts through to the auditor.
func WithAuditOptions(opts ...audit.Option) Option {
	return func(o *options) {
		o.auditOpts = append(o.auditOpts, opts...)
	}
}

func New(opts ...Option) *cobra.Command {
	o := &options{viper: viper.New()}
	for _, opt := range opts {
		opt(o)
	}

	cmd := &cobra.Command{
		Use:   "influx-check",
		Short: "Check connectivity and configuration of a local InfluxDB",
		Long: `Check connectivity and configuration of a local InfluxDB.

Reads the InfluxDB URL and token from an env file, checks that the port is
reachable, audits the CORS preflight response, asks InfluxDB for its health
and reports the status of the InfluxDB container. Exits non-zero only when
the configuration is unusable or the port is closed.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRun: func(cmd *cobra.Command, _ []string) {
			flags.BindFlags(cmd, o.viper)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}

	// Environment variables override flag defaults
	o.viper.SetEnvPrefix(config.EnvPrefix)
	o.viper.AutomaticEnv()
	o.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	rootFlags.Register(cmd.Flags(), true)

	return cmd
}

func run(cmd *cobra.Command, o *options) error {
	v := o.viper

	log, closeLog, err := logging.New(logging.Options{
		Level:   v.GetString("log-level"),
		Format:  v.GetString("log-format"),
		File:    v.GetString("log-file"),
		Console: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx := slogctx.NewCtx(cmd.Context(), log)

	settings, err := config.Load(ctx, v)
	if err != nil {
		return err
	}

	report := audit.New(settings, o.auditOpts...).Run(ctx)

	if settings.MetricsFile != "" {
		if err := metrics.WriteFile(settings.MetricsFile, report); err != nil {
			log.Error("failed to write metrics", slog.Any("error", err))
		}
	}

	if !report.Success {
		return ErrCheckFailed
	}
	return nil
}
