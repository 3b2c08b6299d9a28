// Package container reports the runtime status of containers matched by name.
//
// The lookup mechanism sits behind StatusProvider so the check can use the
// docker CLI, the Docker Engine API or a test double without changes.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcuadros/go-defaults"

	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/utils"
)

const TypeContainer = "container"

// StatusProvider looks up the status of containers whose name contains filter.
// An empty result with a nil error means nothing matched.
type StatusProvider interface {
	Status(ctx context.Context, filter string) (string, error)
	Name() string
}

type Container struct {
	Name     string         `mapstructure:"-"`
	Filter   string         `mapstructure:"filter" default:"influxdb"`
	Timeout  time.Duration  `mapstructure:"timeout" default:"10s"`
	Provider StatusProvider `mapstructure:"-"`
}

func (c *Container) LogValue() slog.Value {
	backend := "none"
	if c.Provider != nil {
		backend = c.Provider.Name()
	}
	logAttr := []slog.Attr{
		slog.String("name", c.Name),
		slog.String("filter", c.Filter),
		slog.String("backend", backend),
		slog.Any("timeout", c.Timeout),
	}
	return slog.GroupValue(logAttr...)
}

func (c *Container) Setup() error {
	defaults.SetDefaults(c)

	if c.Provider == nil {
		c.Provider = &CLI{}
	}
	return nil
}

func (c *Container) GetType() string {
	return TypeContainer
}

func (c *Container) GetName() string {
	return c.Name
}

func (c *Container) GetHealth(ctx context.Context) *health.Response {
	log := utils.ContextLogger(ctx, slog.String("provider", TypeContainer))
	log.Debug("checking", slog.Any("instance", c))

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	component := &health.Response{
		Type: TypeContainer,
		Name: c.Name,
	}
	defer component.LogStatus(log)

	status, err := c.Provider.Status(ctx, c.Filter)
	if err != nil {
		log.Error(fmt.Sprintf("Error checking %s container status: %v", c.Provider.Name(), err))
		return component.Unhealthy(err.Error())
	}

	if status == "" {
		log.Warn(fmt.Sprintf("No container matching %q found", c.Filter))
		return component.Unhealthy("container not found")
	}

	log.Info(fmt.Sprintf("Container %q status: %s", c.Filter, status))
	component.Message = status
	return component.Healthy()
}
