package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/registra-backend/internal/model"
)

type EnrollmentRepository interface {
	// CreateWithGrade inserts the enrollment and its zero-filled grade row as
	// one atomic unit. Callers must treat IsSerializationFailure errors as
	// retryable.
	CreateWithGrade(ctx context.Context, studentID, courseID int) (*model.Enrollment, error)
}

type enrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

// CreateWithGrade runs the whole enrollment sequence in a single serializable
// transaction: course lookup, cross-section check against the student's
// existing enrollments, enrollment insert, grade insert. Serializable
// isolation closes the window where two concurrent calls both pass the
// cross-section check before either commits; the UNIQUE(student_id, course_id)
// constraint covers the duplicate race.
func (r *enrollmentRepository) CreateWithGrade(ctx context.Context, studentID, courseID int) (*model.Enrollment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var prefix string
	var number int
	err = tx.QueryRow(ctx,
		`SELECT prefix, number FROM courses WHERE id = $1`, courseID,
	).Scan(&prefix, &number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var conflictSection string
	err = tx.QueryRow(ctx,
		`SELECT c.section
		 FROM enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.student_id = $1 AND c.prefix = $2 AND c.number = $3 AND c.id <> $4
		 LIMIT 1`,
		studentID, prefix, number, courseID,
	).Scan(&conflictSection)
	if err == nil {
		return nil, &SectionConflictError{Prefix: prefix, Number: number, Section: conflictSection}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	e := &model.Enrollment{StudentID: studentID, CourseID: courseID}
	err = tx.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, course_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		studentID, courseID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == codeUniqueViolation:
				return nil, ErrAlreadyEnrolled
			case pgErr.Code == codeForeignKeyViolation && strings.Contains(pgErr.ConstraintName, "student"):
				return nil, ErrStudentNotFound
			case pgErr.Code == codeForeignKeyViolation:
				return nil, ErrCourseNotFound
			}
		}
		return nil, err
	}

	// Grade row opens with all five components at zero and shares the
	// enrollment's fate: a failure here rolls both inserts back.
	if _, err := tx.Exec(ctx,
		`INSERT INTO grades (enrollment_id) VALUES ($1)`, e.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}
