// Package influx asks an InfluxDB server for its own health report.
package influx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/mcuadros/go-defaults"

	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/utils"
)

const TypeInflux = "influx"

type Influx struct {
	Name    string        `mapstructure:"-"`
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout" default:"5s"`
}

func (i *Influx) LogValue() slog.Value {
	logAttr := []slog.Attr{
		slog.String("name", i.Name),
		slog.String("url", i.URL),
		slog.Any("timeout", i.Timeout),
	}
	return slog.GroupValue(logAttr...)
}

func (i *Influx) Setup() error {
	defaults.SetDefaults(i)

	if i.URL == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

func (i *Influx) GetType() string {
	return TypeInflux
}

func (i *Influx) GetName() string {
	return i.Name
}

func (i *Influx) GetHealth(ctx context.Context) *health.Response {
	log := utils.ContextLogger(ctx, slog.String("provider", TypeInflux))
	log.Debug("checking", slog.Any("instance", i))

	ctx, cancel := context.WithTimeout(ctx, i.Timeout)
	defer cancel()

	component := &health.Response{
		Type: TypeInflux,
		Name: i.Name,
	}
	defer component.LogStatus(log)

	options := influxdb2.DefaultOptions().SetHTTPRequestTimeout(uint(i.Timeout.Round(time.Second).Seconds()))
	client := influxdb2.NewClientWithOptions(i.URL, i.Token, options)
	defer client.Close()

	check, err := client.Health(ctx)
	if err != nil {
		log.Error(fmt.Sprintf("Error checking InfluxDB health: %v", err))
		return component.Unhealthy(err.Error())
	}

	version := deref(check.Version)
	if check.Status != domain.HealthCheckStatusPass {
		message := fmt.Sprintf("status %s", check.Status)
		if msg := deref(check.Message); msg != "" {
			message += ": " + msg
		}
		log.Warn(fmt.Sprintf("InfluxDB health check failed: %s", message))
		return component.Unhealthy(message)
	}

	log.Info(fmt.Sprintf("InfluxDB %s is healthy (version %s)", check.Name, version))
	component.Message = version
	return component.Healthy()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
