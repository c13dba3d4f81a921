package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidQueryError = "invalid_query"
	HttpNotFoundError     = "not_found"
	HttpUnavailableError  = "dataset_unavailable"
)

// DataResponse is the success envelope of every API response.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the failure envelope of every API response.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	ErrorType string      `json:"error_type"`
	Details   interface{} `json:"details,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) DataResponse {
	return DataResponse{Success: true, Data: data}
}

// Fail builds a failure envelope.
func Fail(errorType, message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, ErrorType: errorType}
}
