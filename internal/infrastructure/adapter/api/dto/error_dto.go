package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GatewayErrorResponse is the error shape of the admin gateway endpoints.
// Clients of those endpoints expect a bare "error" field.
type GatewayErrorResponse struct {
	Error string `json:"error"`
}
