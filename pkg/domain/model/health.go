package model

// HealthStatus represents the health check status of the control API
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Mode    Mode   `json:"mode"`
}
