package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Porizovatel/kulda/pkg/audit"
	"github.com/Porizovatel/kulda/pkg/commands/root"
	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/provider"
	"github.com/Porizovatel/kulda/pkg/provider/mock"
)

type mockFactory struct {
	port *mock.Mock
}

func (f *mockFactory) Port(string, int) provider.Instance { return f.port }
func (f *mockFactory) CORS(string, string) provider.Instance {
	return &mock.Mock{Name: "influxdb", Type: "cors", Health: health.Status_UNHEALTHY}
}
func (f *mockFactory) Health(string, string) provider.Instance { return nil }
func (f *mockFactory) Container() provider.Instance {
	return &mock.Mock{Name: "influxdb", Type: "container", Health: health.Status_HEALTHY}
}

func execute(t *testing.T, factory audit.Factory, args ...string) (string, error) {
	t.Helper()
	cmd := root.New(root.WithAuditOptions(audit.WithFactory(factory)))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMissingEnvFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "influxdb_check.log")

	out, err := execute(t, &mockFactory{port: mock.Healthy("influxdb")},
		"--env-file", filepath.Join(dir, ".env"),
		"--log-file", logFile,
	)

	assert.ErrorIs(t, err, root.ErrCheckFailed)
	assert.Regexp(t, regexp.MustCompile(`(?m)^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - ERROR - Failed to load environment variables`), out)

	written, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestCompletedWithWarnings(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	metricsFile := filepath.Join(dir, "influx_check.prom")
	require.NoError(t, os.WriteFile(envFile, []byte("VITE_INFLUXDB_URL=http://localhost:8086\nVITE_INFLUXDB_TOKEN=x\n"), 0o600))

	out, err := execute(t, &mockFactory{port: mock.Healthy("influxdb")},
		"--env-file", envFile,
		"--log-file", "",
		"--metrics-file", metricsFile,
	)

	require.NoError(t, err)
	assert.Contains(t, out, "WARNING - CORS configuration may not be properly set")
	assert.Contains(t, out, "INFO - InfluxDB connection check completed")

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "influx_check_success 1")
}

func TestClosedPort(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VITE_INFLUXDB_URL=http://localhost:8086\nVITE_INFLUXDB_TOKEN=x\n"), 0o600))

	_, err := execute(t, &mockFactory{port: mock.Unhealthy("influxdb")}, "--env-file", envFile, "--log-file", "")

	assert.ErrorIs(t, err, root.ErrCheckFailed)
}

func TestInvalidSettings(t *testing.T) {
	_, err := execute(t, &mockFactory{port: mock.Healthy("influxdb")}, "--log-file", "", "--malformed-lines", "explode")
	require.Error(t, err)
	assert.NotErrorIs(t, err, root.ErrCheckFailed)

	_, err = execute(t, &mockFactory{port: mock.Healthy("influxdb")}, "--log-file", "", "--log-level", "loud")
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(envFile, []byte("VITE_INFLUXDB_URL=http://localhost:8086\nVITE_INFLUXDB_TOKEN=x\n"), 0o600))
	t.Setenv("INFLUX_CHECK_ENV_FILE", envFile)

	_, err := execute(t, &mockFactory{port: mock.Healthy("influxdb")}, "--log-file", "")

	assert.NoError(t, err)
}
