package error

// AuthErrorCode is the code sent with 401, 409 and 429 responses from the
// authentication middleware. Format: AUTH-XXYYYY.
type AuthErrorCode string

const (
	// Throttling errors (02XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-020003"

	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Provisioning errors (05XXXX)
	ErrCodeProvisioningFailed AuthErrorCode = "AUTH-050001"
)
