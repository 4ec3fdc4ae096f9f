package services

// ConfigurationError means no credentials are stored, no request was attempted.
type ConfigurationError struct{}

func (e *ConfigurationError) Error() string {
	return "notion credentials not configured, please set up the extension"
}

// VerificationError means Notion refused the credentials the user tried to save.
type VerificationError struct {
	Message string
	Err     error
}

func (e *VerificationError) Error() string {
	return e.Message
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}
