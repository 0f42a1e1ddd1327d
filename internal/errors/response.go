package errors

import "errors"

// ErrorDetail is the wire shape of a single error.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope returned by the HTTP layer for any failure.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse builds the wire envelope for any error. Unmarked errors
// collapse to internal_error so nothing unclassified leaks to callers.
func NewErrorResponse(err error) *ErrorResponse {
	var ie *InternalError
	if errors.As(err, &ie) {
		return &ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    ie.Code(),
				Message: ie.Hint(),
				Details: ie.ReportableDetails(),
			},
		}
	}
	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    ErrInternal.Error(),
			Message: "An unexpected error occurred",
		},
	}
}
