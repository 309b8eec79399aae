package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
)

// Sentinel errors surfaced by the repositories. Handlers map these with
// errors.Is; services pass them through untouched.
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrMajorNotFound      = errors.New("major not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrMaterialNotFound   = errors.New("course material not found")
	ErrAlreadyEnrolled    = errors.New("student already enrolled in this course")
	ErrDuplicateEmail     = errors.New("student with this email already exists")
	ErrDuplicateUsername  = errors.New("instructor with this username already exists")
	ErrDuplicateSection   = errors.New("course section already exists")
)

// SectionConflictError is returned when a student already holds a different
// section of the same course-number key. It names the conflicting section so
// the API can surface it.
type SectionConflictError struct {
	Prefix  string
	Number  int
	Section string
}

func (e *SectionConflictError) Error() string {
	return fmt.Sprintf("already enrolled in %s-%d section %s", e.Prefix, e.Number, e.Section)
}

// IsSerializationFailure reports whether err is a Postgres serialization
// failure (the serializable-transaction retry signal).
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeSerializationFailure
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
