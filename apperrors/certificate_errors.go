package apperrors

var (
	ErrCertificateNotFound = NotFound("certificate not found")
	ErrStudentNotFound     = NotFound("student not found")
	ErrCourseNotFound      = NotFound("course not found")
	ErrDatabaseURLMissing  = Configuration("DATABASE_URL environment variable is not set")
	ErrSignatureMismatch   = IntegrityMismatch("invalid certificate signature")
)

func ErrDuplicateRecord(cause error) error {
	return ConstraintViolation("record violates a uniqueness constraint", cause)
}

func ErrMissingReference(cause error) error {
	return ConstraintViolation("record references a missing or still-referenced row", cause)
}
