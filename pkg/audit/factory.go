package audit

import (
	"github.com/Porizovatel/kulda/pkg/config"
	"github.com/Porizovatel/kulda/pkg/provider"
	"github.com/Porizovatel/kulda/pkg/provider/container"
	"github.com/Porizovatel/kulda/pkg/provider/cors"
	"github.com/Porizovatel/kulda/pkg/provider/influx"
	"github.com/Porizovatel/kulda/pkg/provider/tcp"
)

const instanceName = "influxdb"

// Factory builds the checks run against a target.
type Factory interface {
	Port(host string, port int) provider.Instance
	CORS(url, token string) provider.Instance
	// Health returns nil when the health check is disabled.
	Health(url, token string) provider.Instance
	Container() provider.Instance
}

type settingsFactory struct {
	settings *config.Settings
}

// NewFactory returns the Factory configured by settings.
func NewFactory(settings *config.Settings) Factory {
	return &settingsFactory{settings: settings}
}

func (f *settingsFactory) Port(host string, port int) provider.Instance {
	return &tcp.TCP{
		Name:    instanceName,
		Host:    host,
		Port:    port,
		Timeout: f.settings.PortTimeout,
	}
}

func (f *settingsFactory) CORS(url, token string) provider.Instance {
	return &cors.CORS{
		Name:    instanceName,
		URL:     url,
		Token:   token,
		Path:    f.settings.PingPath,
		Origin:  f.settings.Origin,
		Timeout: f.settings.CORSTimeout,
	}
}

func (f *settingsFactory) Health(url, token string) provider.Instance {
	if !f.settings.Health {
		return nil
	}
	return &influx.Influx{
		Name:    instanceName,
		URL:     url,
		Token:   token,
		Timeout: f.settings.HealthTimeout,
	}
}

func (f *settingsFactory) Container() provider.Instance {
	var statusProvider container.StatusProvider
	switch f.settings.ContainerRuntime {
	case config.RuntimeEngine:
		statusProvider = &container.Engine{}
	default:
		statusProvider = &container.CLI{Binary: f.settings.ContainerBinary}
	}
	return &container.Container{
		Name:     instanceName,
		Filter:   f.settings.ContainerFilter,
		Timeout:  f.settings.ContainerTimeout,
		Provider: statusProvider,
	}
}
