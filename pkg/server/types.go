package server

import "time"

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	// Error is the human-readable message.
	Error string `json:"error" yaml:"error"`
	// Detail is a machine-readable reason such as "missing_params".
	Detail    string         `json:"detail,omitempty" yaml:"detail,omitempty"`
	Code      string         `json:"code" yaml:"code"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp,omitzero" yaml:"timestamp,omitempty"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// RouteIndex is returned by the default root handler.
type RouteIndex struct {
	Service string   `json:"service" yaml:"service"`
	Version string   `json:"version" yaml:"version"`
	Routes  []string `json:"routes" yaml:"routes"`
}
