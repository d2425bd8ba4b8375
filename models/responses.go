package models

// DataResponse is the success envelope returned by every API endpoint.
type DataResponse struct {
	// Data holds the operation result: a UserView, a login payload,
	// or a list of flight bookings.
	Data any `json:"data"`
}

// ErrorResponse is the failure envelope returned by every API endpoint.
type ErrorResponse struct {
	// Error is a short human-readable description of the failure.
	// It never carries internal detail such as stack traces or SQL text.
	Error string `json:"error"`
}

// LoginResponse is the payload returned by login and signup: the
// API-safe view of the account plus the freshly issued bearer token.
type LoginResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}
