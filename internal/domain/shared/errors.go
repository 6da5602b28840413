package shared

// DomainError is a business rule violation with a stable code the HTTP
// layer maps to a status
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Repositories return these; services translate them into entity-specific errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")

	// ErrInvalidReference means a row points at another row that does not exist
	ErrInvalidReference = NewDomainError("INVALID_REFERENCE", "Referenced resource does not exist")
)
