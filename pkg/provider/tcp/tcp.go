package tcp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/mcuadros/go-defaults"

	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/utils"
)

const TypeTCP = "tcp"

// TCP probes a port by opening and immediately closing a connection.
type TCP struct {
	Name    string        `mapstructure:"-"`
	Host    string        `mapstructure:"host"`
	Port    int           `mapstructure:"port" default:"8086"`
	Timeout time.Duration `mapstructure:"timeout" default:"5s"`
}

func (i *TCP) LogValue() slog.Value {
	logAttr := []slog.Attr{
		slog.String("name", i.Name),
		slog.String("host", i.Host),
		slog.Int("port", i.Port),
		slog.Any("timeout", i.Timeout),
	}
	return slog.GroupValue(logAttr...)
}

func (i *TCP) Setup() error {
	defaults.SetDefaults(i)

	if i.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func (i *TCP) GetType() string {
	return TypeTCP
}

func (i *TCP) GetName() string {
	return i.Name
}

func (i *TCP) GetHealth(ctx context.Context) *health.Response {
	log := utils.ContextLogger(ctx, slog.String("provider", TypeTCP))
	log.Debug("checking", slog.Any("instance", i))

	ctx, cancel := context.WithTimeout(ctx, i.Timeout)
	defer cancel()

	component := &health.Response{
		Type: TypeTCP,
		Name: i.Name,
	}
	defer component.LogStatus(log)

	address := net.JoinHostPort(i.Host, strconv.Itoa(i.Port))
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		log.Error(fmt.Sprintf("Port %d is not accessible on %s: %v", i.Port, i.Host, err))
		return component.Unhealthy(err.Error())
	}
	_ = conn.Close()

	log.Info(fmt.Sprintf("Port %d is open on %s", i.Port, i.Host))
	return component.Healthy()
}
