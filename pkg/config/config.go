// Package config holds the settings of a single audit run.
//
// Every field has a flag of the same name and an INFLUX_CHECK_* environment
// variable; values left unset fall back to the defaults below.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mcuadros/go-defaults"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/Porizovatel/kulda/pkg/envfile"
	"github.com/Porizovatel/kulda/pkg/utils"
)

const EnvPrefix = "INFLUX_CHECK"

const (
	RuntimeCLI    = "cli"
	RuntimeEngine = "engine"
)

type Settings struct {
	EnvFile        string         `mapstructure:"env-file" default:".env" validate:"required"`
	URLKey         string         `mapstructure:"url-key" default:"VITE_INFLUXDB_URL" validate:"required"`
	TokenKey       string         `mapstructure:"token-key" default:"VITE_INFLUXDB_TOKEN" validate:"required"`
	MalformedLines envfile.Policy `mapstructure:"malformed-lines" default:"skip-and-warn" validate:"oneof=fail skip skip-and-warn"`
	DefaultPort    int            `mapstructure:"default-port" default:"8086" validate:"min=1,max=65535"`

	PortTimeout time.Duration `mapstructure:"port-timeout" default:"5s" validate:"gt=0"`

	CORSTimeout time.Duration `mapstructure:"cors-timeout" default:"5s" validate:"gt=0"`
	PingPath    string        `mapstructure:"ping-path" default:"/api/v2/ping" validate:"startswith=/"`
	Origin      string        `mapstructure:"origin" default:"http://localhost:5173" validate:"required,url"`

	Health        bool          `mapstructure:"health"`
	HealthTimeout time.Duration `mapstructure:"health-timeout" default:"5s" validate:"gt=0"`

	ContainerFilter  string        `mapstructure:"container-filter" default:"influxdb" validate:"required"`
	ContainerRuntime string        `mapstructure:"container-runtime" default:"cli" validate:"oneof=cli engine"`
	ContainerBinary  string        `mapstructure:"container-binary" default:"docker" validate:"required"`
	ContainerTimeout time.Duration `mapstructure:"container-timeout" default:"10s" validate:"gt=0"`

	MetricsFile string `mapstructure:"metrics-file"`
}

func (s *Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("envFile", s.EnvFile),
		slog.String("urlKey", s.URLKey),
		slog.String("tokenKey", s.TokenKey),
		slog.String("malformedLines", s.MalformedLines.String()),
		slog.Duration("portTimeout", s.PortTimeout),
		slog.Duration("corsTimeout", s.CORSTimeout),
		slog.String("origin", s.Origin),
		slog.Bool("health", s.Health),
		slog.String("containerRuntime", s.ContainerRuntime),
	)
}

// Default returns settings populated from default tags only.
func Default() *Settings {
	s := &Settings{Health: true}
	defaults.SetDefaults(s)
	return s
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate reports every invalid field at once.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(errs))
			for _, fe := range errs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q check (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// Load decodes v into Settings, filling unset fields with defaults.
func Load(ctx context.Context, v *viper.Viper) (*Settings, error) {
	log := utils.ContextLogger(ctx, slog.String("context", "config"))

	settings := Default()
	err := v.Unmarshal(settings, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)))
	if err != nil {
		log.Error("failed to decode settings", "error", err)
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	// zero values from explicitly empty settings fall back to defaults
	defaults.SetDefaults(settings)

	if err := settings.Validate(); err != nil {
		log.Error("invalid settings", "error", err)
		return nil, err
	}

	log.Debug("settings loaded", slog.Any("settings", settings))
	return settings, nil
}
