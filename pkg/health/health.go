// Package health holds the result type shared by every check.
package health

import (
	"log/slog"
	"time"
)

type Status int

const (
	Status_UNKNOWN Status = iota
	Status_HEALTHY
	Status_UNHEALTHY
)

func (s Status) String() string {
	switch s {
	case Status_HEALTHY:
		return "HEALTHY"
	case Status_UNHEALTHY:
		return "UNHEALTHY"
	default:
		return "UNKNOWN"
	}
}

// Response is the outcome of a single check.
type Response struct {
	Type     string
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
}

func (s *Response) GetType() string {
	if s == nil {
		return ""
	}
	return s.Type
}

func (s *Response) GetName() string {
	if s == nil {
		return ""
	}
	return s.Name
}

func (s *Response) GetStatus() Status {
	if s == nil {
		return Status_UNKNOWN
	}
	return s.Status
}

func (s *Response) GetMessage() string {
	if s == nil {
		return ""
	}
	return s.Message
}

func (s *Response) IsHealthy() bool {
	return s.GetStatus() == Status_HEALTHY
}

func (s *Response) LogStatus(log *slog.Logger) {
	if s.Status == Status_HEALTHY {
		log.Debug("success")
	} else {
		log.Debug("failure", slog.String("message", s.Message))
	}
}

func (s *Response) Healthy() *Response {
	s.Status = Status_HEALTHY
	return s
}

func (s *Response) Unhealthy(msg string) *Response {
	s.Status = Status_UNHEALTHY
	s.Message = msg
	return s
}

// Report collects responses in the order the checks ran.
type Report struct {
	RunID     string
	Responses []*Response
	// Success is false when the run stopped before the advisory checks.
	Success bool
}

func (r *Report) Add(response *Response) {
	if response != nil {
		r.Responses = append(r.Responses, response)
	}
}

// Find returns the first response of the given type, or nil.
func (r *Report) Find(checkType string) *Response {
	for _, response := range r.Responses {
		if response.Type == checkType {
			return response
		}
	}
	return nil
}
