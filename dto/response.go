package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ExtractionResult is the success body of POST /extract-text.
type ExtractionResult struct {
	Success bool `json:"success"`
	// Time is the handler latency in milliseconds, fractional part kept.
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
