package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeNotRegistered indicates no registration exists for the requested type.
	ErrCodeNotRegistered ErrorCode = "NOT_REGISTERED"
	// ErrCodeArityMismatch indicates the resolve call supplied a different
	// number of arguments than the registered builder accepts.
	ErrCodeArityMismatch ErrorCode = "ARITY_MISMATCH"
	// ErrCodeArgumentMismatch indicates an argument type differs from the
	// registered builder's parameter type.
	ErrCodeArgumentMismatch ErrorCode = "ARGUMENT_MISMATCH"
	// ErrCodeResultMismatch indicates the stored instance is not of the requested type.
	ErrCodeResultMismatch ErrorCode = "RESULT_MISMATCH"
	// ErrCodeSingletonArgumentsChanged indicates a cached singleton was
	// resolved with arguments that differ from its first construction.
	ErrCodeSingletonArgumentsChanged ErrorCode = "SINGLETON_ARGUMENTS_CHANGED"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates the container configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

var programmerErrorCodes = map[ErrorCode]bool{
	ErrCodeNotRegistered:             true,
	ErrCodeArityMismatch:             true,
	ErrCodeArgumentMismatch:          true,
	ErrCodeResultMismatch:            true,
	ErrCodeSingletonArgumentsChanged: true,
	ErrCodeInvalidConfig:             false,
}

// IsProgrammerErrorCode returns true if the code signals a wiring mistake in
// the calling code rather than a runtime condition.
func IsProgrammerErrorCode(code ErrorCode) bool {
	return programmerErrorCodes[code]
}
