package main

// Messages returned to clients of the search endpoint.
const (
	msgQueryRequired  = "A search query is required."
	msgInvalidPage    = "page must be an integer"
	msgUpstreamFailed = "Failed to fetch song catalog."
)

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// InfoResponse is the response for GET /api
type InfoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	PageSize  int               `json:"page_size"`
	Encoding  string            `json:"encoding"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
