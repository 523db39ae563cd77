package contract

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ValidationResult is the outcome of request binding + validation. An empty
// Code means the request passed.
type ValidationResult struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
