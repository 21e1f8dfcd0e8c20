package dtos

type HealthCheckResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// PaginatedResponse wraps any list endpoint that supports page/limit.
type PaginatedResponse struct {
	Data  any `json:"data"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
