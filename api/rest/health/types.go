package health

import "context"

const serviceName = "actas"

// Response represents the health check response
type Response struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// Check probes one dependency
type Check func(ctx context.Context) error
