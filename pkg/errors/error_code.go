package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeMissingCredential    ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101

	// Authentication errors (200-299)
	ErrCodeAuthFailed            ErrorCode = 200
	ErrCodeAuthMalformedResponse ErrorCode = 201

	// Fetch errors (300-399)
	ErrCodeFetchFailed            ErrorCode = 300
	ErrCodeFetchMalformedResponse ErrorCode = 301

	// Schema errors (400-499)
	ErrCodeSchemaInvalid ErrorCode = 400

	// Filesystem errors (500-599)
	ErrCodeIOFailed           ErrorCode = 500
	ErrCodeParquetWriteFailed ErrorCode = 501
	ErrCodeCalendarReadFailed ErrorCode = 502
)

// ErrorKind groups error codes into the failure classes reported by the CLI.
type ErrorKind string

const (
	KindUnknown ErrorKind = "Error"
	KindConfig  ErrorKind = "ConfigError"
	KindAuth    ErrorKind = "AuthError"
	KindFetch   ErrorKind = "FetchError"
	KindSchema  ErrorKind = "SchemaError"
	KindIO      ErrorKind = "IOError"
)

// Kind returns the class the code belongs to.
func (c ErrorCode) Kind() ErrorKind {
	switch {
	case c >= 100 && c < 200:
		return KindConfig
	case c >= 200 && c < 300:
		return KindAuth
	case c >= 300 && c < 400:
		return KindFetch
	case c >= 400 && c < 500:
		return KindSchema
	case c >= 500 && c < 600:
		return KindIO
	default:
		return KindUnknown
	}
}
