package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/registra-backend/internal/model"
)

type GradeRepository interface {
	// Upsert applies the provided components to the grade row of the
	// (student, course) enrollment. Nil components are left unchanged on an
	// existing row and default to zero when the row has to be created.
	// Returns ErrEnrollmentNotFound when the pair is not enrolled at all.
	Upsert(ctx context.Context, studentID, courseID int, c model.GradeComponents) (*model.Grade, error)
}

type gradeRepository struct {
	pool *pgxpool.Pool
}

func NewGradeRepository(pool *pgxpool.Pool) GradeRepository {
	return &gradeRepository{pool: pool}
}

const gradeColumns = `id, enrollment_id, quiz1, quiz2, project1, project2, final_exam, created_at, updated_at`

func (r *gradeRepository) Upsert(ctx context.Context, studentID, courseID int, c model.GradeComponents) (*model.Grade, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var enrollmentID int
	err = tx.QueryRow(ctx,
		`SELECT id FROM enrollments WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID,
	).Scan(&enrollmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	g := &model.Grade{}
	err = tx.QueryRow(ctx,
		`UPDATE grades
		 SET quiz1      = COALESCE($2, quiz1),
		     quiz2      = COALESCE($3, quiz2),
		     project1   = COALESCE($4, project1),
		     project2   = COALESCE($5, project2),
		     final_exam = COALESCE($6, final_exam),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE enrollment_id = $1
		 RETURNING `+gradeColumns,
		enrollmentID, c.Quiz1, c.Quiz2, c.Project1, c.Project2, c.FinalExam,
	).Scan(&g.ID, &g.EnrollmentID, &g.Quiz1, &g.Quiz2, &g.Project1, &g.Project2, &g.FinalExam,
		&g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// The enrollment predates the grade invariant; repair it here.
		err = tx.QueryRow(ctx,
			`INSERT INTO grades (enrollment_id, quiz1, quiz2, project1, project2, final_exam)
			 VALUES ($1, COALESCE($2, 0), COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, 0), COALESCE($6, 0))
			 RETURNING `+gradeColumns,
			enrollmentID, c.Quiz1, c.Quiz2, c.Project1, c.Project2, c.FinalExam,
		).Scan(&g.ID, &g.EnrollmentID, &g.Quiz1, &g.Quiz2, &g.Project1, &g.Project2, &g.FinalExam,
			&g.CreatedAt, &g.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return g, nil
}
