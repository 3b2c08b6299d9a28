package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Porizovatel/kulda/pkg/config"
	"github.com/Porizovatel/kulda/pkg/envfile"
)

func TestDefault(t *testing.T) {
	s := config.Default()

	assert.Equal(t, ".env", s.EnvFile)
	assert.Equal(t, "VITE_INFLUXDB_URL", s.URLKey)
	assert.Equal(t, "VITE_INFLUXDB_TOKEN", s.TokenKey)
	assert.Equal(t, envfile.PolicySkipAndWarn, s.MalformedLines)
	assert.Equal(t, 8086, s.DefaultPort)
	assert.Equal(t, 5*time.Second, s.PortTimeout)
	assert.Equal(t, 5*time.Second, s.CORSTimeout)
	assert.Equal(t, "/api/v2/ping", s.PingPath)
	assert.Equal(t, "http://localhost:5173", s.Origin)
	assert.True(t, s.Health)
	assert.Equal(t, "influxdb", s.ContainerFilter)
	assert.Equal(t, config.RuntimeCLI, s.ContainerRuntime)
	assert.Equal(t, "docker", s.ContainerBinary)
	assert.Empty(t, s.MetricsFile)
	assert.NoError(t, s.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		check   func(*testing.T, *config.Settings)
		wantErr string
	}{
		{
			name:   "empty uses defaults",
			values: map[string]any{},
			check: func(t *testing.T, s *config.Settings) {
				assert.Equal(t, config.Default(), s)
			},
		},
		{
			name: "overrides",
			values: map[string]any{
				"env-file":          "/etc/influx.env",
				"malformed-lines":   "fail",
				"port-timeout":      "250ms",
				"origin":            "https://app.example.com",
				"health":            false,
				"container-runtime": "engine",
			},
			check: func(t *testing.T, s *config.Settings) {
				assert.Equal(t, "/etc/influx.env", s.EnvFile)
				assert.Equal(t, envfile.PolicyFail, s.MalformedLines)
				assert.Equal(t, 250*time.Millisecond, s.PortTimeout)
				assert.Equal(t, "https://app.example.com", s.Origin)
				assert.False(t, s.Health)
				assert.Equal(t, config.RuntimeEngine, s.ContainerRuntime)
			},
		},
		{
			name:    "unknown policy",
			values:  map[string]any{"malformed-lines": "ignore"},
			wantErr: "malformed-line policy",
		},
		{
			name:    "unknown runtime",
			values:  map[string]any{"container-runtime": "lxc"},
			wantErr: "container-runtime",
		},
		{
			name:    "bad ping path",
			values:  map[string]any{"ping-path": "api/v2/ping"},
			wantErr: "ping-path",
		},
		{
			name:    "negative timeout",
			values:  map[string]any{"cors-timeout": "-1s"},
			wantErr: "cors-timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for key, value := range tt.values {
				v.Set(key, value)
			}

			settings, err := config.Load(context.Background(), v)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}
