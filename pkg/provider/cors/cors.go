// Package cors audits the CORS preflight response of an HTTP endpoint.
//
// A single OPTIONS request is sent with an Origin and an Authorization token.
// The check is healthy only when the response carries non-empty
// Access-Control-Allow-Origin, Access-Control-Allow-Methods and
// Access-Control-Allow-Headers headers.
package cors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcuadros/go-defaults"

	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/utils"
)

const (
	TypeCORS    = "cors"
	maxBodySize = 64 * 1024
)

// RequiredHeaders are the response headers a usable preflight must carry.
var RequiredHeaders = []string{
	"Access-Control-Allow-Origin",
	"Access-Control-Allow-Methods",
	"Access-Control-Allow-Headers",
}

type CORS struct {
	Name          string        `mapstructure:"-"`
	URL           string        `mapstructure:"url"`
	Token         string        `mapstructure:"token"`
	Path          string        `mapstructure:"path" default:"/api/v2/ping"`
	Origin        string        `mapstructure:"origin" default:"http://localhost:5173"`
	RequestMethod string        `mapstructure:"requestMethod" default:"GET"`
	Timeout       time.Duration `mapstructure:"timeout" default:"5s"`

	// Transport overrides the HTTP transport; nil uses http.DefaultTransport.
	Transport http.RoundTripper `mapstructure:"-"`
}

func (c *CORS) LogValue() slog.Value {
	logAttr := []slog.Attr{
		slog.String("name", c.Name),
		slog.String("url", c.URL),
		slog.String("path", c.Path),
		slog.String("origin", c.Origin),
		slog.Bool("hasToken", c.Token != ""),
		slog.Any("timeout", c.Timeout),
	}
	return slog.GroupValue(logAttr...)
}

func (c *CORS) Setup() error {
	defaults.SetDefaults(c)

	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

func (c *CORS) GetType() string {
	return TypeCORS
}

func (c *CORS) GetName() string {
	return c.Name
}

func (c *CORS) GetHealth(ctx context.Context) *health.Response {
	log := utils.ContextLogger(ctx, slog.String("provider", TypeCORS))
	log.Debug("checking", slog.Any("instance", c))

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	component := &health.Response{
		Type: TypeCORS,
		Name: c.Name,
	}
	defer component.LogStatus(log)

	header, err := c.preflight(ctx)
	if err != nil {
		log.Error(fmt.Sprintf("Error checking CORS headers: %v", err))
		return component.Unhealthy(err.Error())
	}

	missing := Missing(header)

	log.Info("CORS Headers:")
	for _, name := range RequiredHeaders {
		if value := header.Get(name); value != "" {
			log.Info(fmt.Sprintf("  %s: %s", name, value))
		} else {
			log.Warn(fmt.Sprintf("  Missing CORS header: %s", name))
		}
	}

	if len(missing) > 0 {
		return component.Unhealthy("missing CORS header(s): " + strings.Join(missing, ", "))
	}
	return component.Healthy()
}

// Missing returns the required headers that are absent or empty in header.
func Missing(header http.Header) []string {
	var missing []string
	for _, name := range RequiredHeaders {
		if header.Get(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// preflight issues the OPTIONS request and returns the response headers.
func (c *CORS) preflight(ctx context.Context) (http.Header, error) {
	target := strings.TrimSuffix(c.URL, "/") + c.Path

	request, err := http.NewRequestWithContext(ctx, http.MethodOptions, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// one-shot probe: do not leave the connection in the idle pool
	request.Close = true
	request.Header.Set("Authorization", "Token "+c.Token)
	request.Header.Set("Origin", c.Origin)
	if c.RequestMethod != "" {
		request.Header.Set("Access-Control-Request-Method", c.RequestMethod)
	}

	client := &http.Client{Transport: c.Transport}

	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = response.Body.Close() }()

	// drain so the connection is released cleanly
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodySize))

	return response.Header, nil
}
