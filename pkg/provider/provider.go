package provider

import (
	"context"
	"time"

	"github.com/Porizovatel/kulda/pkg/health"
)

// Instance is the interface that must be implemented by all checks.
type Instance interface {
	// GetType returns the check type of the instance
	GetType() string
	// GetName returns the name of the instance
	GetName() string
	// GetHealth runs the check once and returns its outcome
	GetHealth(context.Context) *health.Response
	// Setup sets the default values for the instance and validates it.
	Setup() error
}

// GetHealthWithDuration runs the instance and records how long it took.
func GetHealthWithDuration(ctx context.Context, instance Instance) *health.Response {
	start := time.Now()
	response := instance.GetHealth(ctx)
	if response != nil {
		response.Duration = time.Since(start)
	}
	return response
}
