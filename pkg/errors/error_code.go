package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102

	// Catalog errors (200-299)
	ErrCodeUnknownPreset ErrorCode = 200

	// Download errors (700-799)
	ErrCodeNoData            ErrorCode = 700
	ErrCodeProviderFailure   ErrorCode = 701
	ErrCodeFilesystemFailure ErrorCode = 702
	ErrCodeInvalidProvider   ErrorCode = 703
	ErrCodeInvalidFormat     ErrorCode = 704
)
