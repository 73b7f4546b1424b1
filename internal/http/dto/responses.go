package dto

// APIResponse is the envelope every admin endpoint answers with.
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func OK(message string, data any) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

func Fail(message string, errs ...string) APIResponse {
	return APIResponse{Success: false, Message: message, Errors: errs}
}

// WSError is written to an audit feed socket before it is closed.
type WSError struct {
	Error string `json:"error"`
}
