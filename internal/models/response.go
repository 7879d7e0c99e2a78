package models

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Fail builds the standard error envelope.
func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
