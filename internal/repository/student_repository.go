package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/registra-backend/internal/model"
)

// StudentWithMajor is a directory listing row: the student plus the display
// name of their major.
type StudentWithMajor struct {
	model.Student
	MajorName string `json:"major_name"`
}

// StudentCourseEntry is one course a student is enrolled in, with the grade
// components recorded for that enrollment. Grade components are nil when the
// enrollment predates the grade invariant and has not been repaired yet.
type StudentCourseEntry struct {
	model.Course
	Grade model.GradeComponents `json:"grade"`
}

type StudentRepository interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id int) (*model.Student, error)
	List(ctx context.Context) ([]StudentWithMajor, error)
	Delete(ctx context.Context, id int) error
	ListCourses(ctx context.Context, studentID int) ([]StudentCourseEntry, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

// Create inserts a new student.
func (r *studentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (first_name, last_name, email, major_id, graduating_year)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		s.FirstName, s.LastName, s.Email, s.MajorID, s.GraduatingYear,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case codeUniqueViolation:
				return ErrDuplicateEmail
			case codeForeignKeyViolation:
				return ErrMajorNotFound
			}
		}
		return err
	}
	return nil
}

// GetByID retrieves a student by ID.
func (r *studentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, major_id, graduating_year, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.MajorID, &s.GraduatingYear, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

// List retrieves all students with their major names.
func (r *studentRepository) List(ctx context.Context) ([]StudentWithMajor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.first_name, s.last_name, s.email, s.major_id, s.graduating_year,
		        s.created_at, s.updated_at, m.name
		 FROM students s
		 JOIN majors m ON m.id = s.major_id
		 ORDER BY s.last_name, s.first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []StudentWithMajor{}
	for rows.Next() {
		var s StudentWithMajor
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.MajorID,
			&s.GraduatingYear, &s.CreatedAt, &s.UpdatedAt, &s.MajorName); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Delete removes a student. Enrollments and grades go with it via FK cascade.
func (r *studentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// ListCourses retrieves the courses a student is enrolled in, with grades.
func (r *studentRepository) ListCourses(ctx context.Context, studentID int) ([]StudentCourseEntry, error) {
	if _, err := r.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.prefix, c.number, c.section, c.title, c.classroom, c.start_time,
		        c.instructor_id, c.created_at, c.updated_at,
		        g.quiz1, g.quiz2, g.project1, g.project2, g.final_exam
		 FROM courses c
		 JOIN enrollments e ON e.course_id = c.id
		 LEFT JOIN grades g ON g.enrollment_id = e.id
		 WHERE e.student_id = $1
		 ORDER BY c.prefix, c.number, c.section`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []StudentCourseEntry{}
	for rows.Next() {
		var e StudentCourseEntry
		if err := rows.Scan(&e.ID, &e.Prefix, &e.Number, &e.Section, &e.Title, &e.Classroom,
			&e.StartTime, &e.InstructorID, &e.CreatedAt, &e.UpdatedAt,
			&e.Grade.Quiz1, &e.Grade.Quiz2, &e.Grade.Project1, &e.Grade.Project2, &e.Grade.FinalExam); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
