package apperrors

type Code string

const (
	CodeUnknown             Code = "UNKNOWN"
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodeNotFound            Code = "NOT_FOUND"
	CodeConstraintViolation Code = "CONSTRAINT_VIOLATION"
	CodeConfiguration       Code = "CONFIGURATION"
	CodeIntegrityMismatch   Code = "INTEGRITY_MISMATCH"
	CodeInternal            Code = "INTERNAL"
)
