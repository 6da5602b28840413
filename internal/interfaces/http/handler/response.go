package handler

import "github.com/archerandash/storefront/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse represents a simple success API response for OpenAPI documentation
// @Description Simple success response without data
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// MessageResponse is a success flag with a human readable message
// @Description Success response with message
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}

// PlainMessageResponse is a bare message
// @Description Message without a success flag
type PlainMessageResponse struct {
	Message string `json:"message"`
}

// GatewayErrorResponse is returned when the payment provider rejects a request
// @Description Payment provider failure
type GatewayErrorResponse struct {
	Error   string `json:"error" example:"PayPal order creation failed"`
	Details any    `json:"details,omitempty"`
}
