package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for store and API responses
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInvalidProduct  = "INVALID_PRODUCT"
	ErrCodeStoreFailure    = "STORE_FAILURE"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. ErrNotFound and ErrConflict are the two signals the
// reconciliation pipeline distinguishes at the store boundary; everything
// else is treated as a transient store failure.
var (
	ErrNotFound       = NewDomainError(ErrCodeNotFound, "No product exists for this identity")
	ErrConflict       = NewDomainError(ErrCodeConflict, "A product with this identity already exists")
	ErrInvalidProduct = NewDomainError(ErrCodeInvalidProduct, "Product failed validation checks")
)
