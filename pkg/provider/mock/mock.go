// Package mock provides scripted checks and container status providers for tests.
package mock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mcuadros/go-defaults"

	"github.com/Porizovatel/kulda/pkg/health"
)

const TypeMock = "mock"

type Mock struct {
	Name    string        `mapstructure:"-"`
	Type    string        `mapstructure:"type" default:"mock"`
	Health  health.Status `mapstructure:"health" default:"1"`
	Message string        `mapstructure:"message"`
	Sleep   time.Duration `mapstructure:"sleep" default:"1ns"`

	calls atomic.Int32
}

// Healthy creates a healthy mock with given name
func Healthy(name string) *Mock {
	return &Mock{Name: name, Health: health.Status_HEALTHY}
}

// Unhealthy creates an unhealthy mock with given name
func Unhealthy(name string) *Mock {
	return &Mock{Name: name, Health: health.Status_UNHEALTHY, Message: "mock failure"}
}

func (i *Mock) Setup() error {
	defaults.SetDefaults(i)
	return nil
}

func (i *Mock) GetType() string {
	if i.Type == "" {
		return TypeMock
	}
	return i.Type
}

func (i *Mock) GetName() string {
	return i.Name
}

// Calls reports how many times GetHealth ran.
func (i *Mock) Calls() int {
	return int(i.calls.Load())
}

func (i *Mock) GetHealth(ctx context.Context) *health.Response {
	i.calls.Add(1)

	// simulate a delay
	select {
	case <-time.After(i.Sleep):
	case <-ctx.Done():
		return &health.Response{Type: i.GetType(), Name: i.Name, Status: health.Status_UNHEALTHY, Message: ctx.Err().Error()}
	}

	return &health.Response{
		Type:    i.GetType(),
		Name:    i.Name,
		Status:  i.Health,
		Message: i.Message,
	}
}

// StatusProvider returns a fixed container status.
type StatusProvider struct {
	Result string
	Err    error

	calls   atomic.Int32
	filters []string
}

func (p *StatusProvider) Name() string {
	return TypeMock
}

func (p *StatusProvider) Status(_ context.Context, filter string) (string, error) {
	p.calls.Add(1)
	p.filters = append(p.filters, filter)
	return p.Result, p.Err
}

func (p *StatusProvider) Calls() int {
	return int(p.calls.Load())
}

// Filters returns the filters Status was called with.
func (p *StatusProvider) Filters() []string {
	return p.filters
}
