package dto

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every process-ticket response.
type Envelope struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

// Success builds a success envelope.
func Success(message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// Failure builds an error envelope.
func Failure(message string, errors []string) Envelope {
	return Envelope{Status: StatusError, Message: message, Errors: errors}
}

// HealthResponse is returned by the liveness check.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse is returned by the readiness check.
type ReadinessResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Store   string `json:"store"`
}
