package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig  = fmt.Errorf("invalid configuration")
	ErrUnknownBackend = fmt.Errorf("unknown storage backend")

	// Lookup errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrCEPNotFound        = fmt.Errorf("CEP not found")

	// Storage errors
	ErrStorage        = fmt.Errorf("storage operation failed")
	ErrRecordNotFound = fmt.Errorf("address not found")
	ErrInvalidRecord  = fmt.Errorf("invalid address record")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
