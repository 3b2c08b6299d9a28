package cors_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	slogctx "github.com/veqryn/slog-context"

	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/provider/cors"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected health.Status
		missing  []string
	}{
		{
			name: "all headers",
			headers: map[string]string{
				"Access-Control-Allow-Origin":  "http://localhost:5173",
				"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
				"Access-Control-Allow-Headers": "Authorization, Content-Type",
			},
			expected: health.Status_HEALTHY,
		},
		{
			name: "missing methods",
			headers: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Headers": "Authorization",
			},
			expected: health.Status_UNHEALTHY,
			missing:  []string{"Access-Control-Allow-Methods"},
		},
		{
			name:     "no headers",
			headers:  map[string]string{},
			expected: health.Status_UNHEALTHY,
			missing:  cors.RequiredHeaders,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received *http.Request
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received = r.Clone(context.Background())
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			buf := &bytes.Buffer{}
			ctx := slogctx.NewCtx(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))

			instance := &cors.CORS{
				Name:  "TestCORS",
				URL:   server.URL + "/",
				Token: "secret-token",
			}
			require.NoError(t, instance.Setup())

			result := instance.GetHealth(ctx)

			assert.Equal(t, cors.TypeCORS, result.GetType())
			assert.Equal(t, tt.expected, result.GetStatus())

			require.NotNil(t, received)
			assert.Equal(t, http.MethodOptions, received.Method)
			assert.Equal(t, "/api/v2/ping", received.URL.Path)
			assert.Equal(t, "Token secret-token", received.Header.Get("Authorization"))
			assert.Equal(t, "http://localhost:5173", received.Header.Get("Origin"))

			logged := buf.String()
			assert.Equal(t, len(tt.missing), strings.Count(logged, "Missing CORS header"))
			for _, name := range tt.missing {
				assert.Contains(t, logged, "Missing CORS header: "+name)
				assert.Contains(t, result.GetMessage(), name)
			}
		})
	}
}

func TestCORSRequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	buf := &bytes.Buffer{}
	ctx := slogctx.NewCtx(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))

	instance := &cors.CORS{Name: "closed", URL: url, Timeout: time.Second}
	require.NoError(t, instance.Setup())

	result := instance.GetHealth(ctx)

	assert.Equal(t, health.Status_UNHEALTHY, result.GetStatus())
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "Error checking CORS headers")
}

func TestCORSTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	instance := &cors.CORS{Name: "slow", URL: server.URL, Timeout: 50 * time.Millisecond}
	require.NoError(t, instance.Setup())

	start := time.Now()
	result := instance.GetHealth(context.Background())

	assert.Equal(t, health.Status_UNHEALTHY, result.GetStatus())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMissing(t *testing.T) {
	header := http.Header{}
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "")

	assert.Equal(t, []string{"Access-Control-Allow-Methods", "Access-Control-Allow-Headers"}, cors.Missing(header))
}

func TestCORSSetup(t *testing.T) {
	assert.Error(t, (&cors.CORS{}).Setup())
}
