package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/registra-backend/internal/model"
)

// RosterEntry is one enrolled student on a course roster, with the grade
// components recorded for that enrollment.
type RosterEntry struct {
	model.Student
	Grade model.GradeComponents `json:"grade"`
}

type CourseRepository interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id int) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Delete(ctx context.Context, id int) error
	ListRoster(ctx context.Context, courseID int) ([]RosterEntry, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

// Create inserts a new course section.
func (r *courseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (prefix, number, section, title, classroom, start_time, instructor_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		c.Prefix, c.Number, c.Section, c.Title, c.Classroom, c.StartTime, c.InstructorID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return ErrDuplicateSection
		}
		return err
	}
	return nil
}

// GetByID retrieves a course by ID.
func (r *courseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, prefix, number, section, title, classroom, start_time, instructor_id, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Prefix, &c.Number, &c.Section, &c.Title, &c.Classroom, &c.StartTime,
		&c.InstructorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

// List retrieves all course sections.
func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, prefix, number, section, title, classroom, start_time, instructor_id, created_at, updated_at
		 FROM courses ORDER BY prefix, number, section`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Prefix, &c.Number, &c.Section, &c.Title, &c.Classroom,
			&c.StartTime, &c.InstructorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Delete removes a course. Enrollments, grades, and material rows cascade.
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// ListRoster retrieves the students enrolled in a course, with grades.
func (r *courseRepository) ListRoster(ctx context.Context, courseID int) ([]RosterEntry, error) {
	if _, err := r.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.first_name, s.last_name, s.email, s.major_id, s.graduating_year,
		        s.created_at, s.updated_at,
		        g.quiz1, g.quiz2, g.project1, g.project2, g.final_exam
		 FROM students s
		 JOIN enrollments e ON e.student_id = s.id
		 LEFT JOIN grades g ON g.enrollment_id = e.id
		 WHERE e.course_id = $1
		 ORDER BY s.last_name, s.first_name`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []RosterEntry{}
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.MajorID,
			&e.GraduatingYear, &e.CreatedAt, &e.UpdatedAt,
			&e.Grade.Quiz1, &e.Grade.Quiz2, &e.Grade.Project1, &e.Grade.Project2, &e.Grade.FinalExam); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
