package dto

import "github.com/invoicepdf/invoice-api/internal/domain/invoice"

// ErrorResponse HTTP error body. Fields is filled for validation errors,
// one entry per violated constraint.
type ErrorResponse struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Fields  []invoice.FieldError `json:"fields,omitempty"`
}

// ValidationErrorResponse maps a document validation error onto the HTTP
// error body.
func ValidationErrorResponse(verr *invoice.ValidationError) ErrorResponse {
	return ErrorResponse{
		Code:    "VALIDATION",
		Message: "document is invalid",
		Fields:  verr.Fields,
	}
}
