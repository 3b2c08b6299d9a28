package provider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Porizovatel/kulda/pkg/health"
	"github.com/Porizovatel/kulda/pkg/provider"
	"github.com/Porizovatel/kulda/pkg/provider/mock"
)

func TestGetHealthWithDuration(t *testing.T) {
	tests := []struct {
		name     string
		instance *mock.Mock
		expected health.Status
	}{
		{
			name:     "Healthy",
			instance: &mock.Mock{Health: health.Status_HEALTHY, Sleep: 10 * time.Millisecond},
			expected: health.Status_HEALTHY,
		},
		{
			name:     "Unhealthy",
			instance: &mock.Mock{Health: health.Status_UNHEALTHY, Sleep: 10 * time.Millisecond},
			expected: health.Status_UNHEALTHY,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := provider.GetHealthWithDuration(context.Background(), tt.instance)

			assert.Equal(t, tt.expected, result.GetStatus())
			assert.GreaterOrEqual(t, result.Duration, 10*time.Millisecond)
		})
	}
}

func TestInstanceError(t *testing.T) {
	cause := errors.New("url is required")
	err := provider.NewInstanceError("cors", "influxdb", cause)

	assert.Equal(t, "cors/influxdb: url is required", err.Error())
	assert.ErrorIs(t, err, cause)
}
