package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// Catalog API errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrEmptyResult        = fmt.Errorf("no usable results")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Dataset and storage errors
	ErrNotFound      = fmt.Errorf("not found")
	ErrMissingColumn = fmt.Errorf("required column missing")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
