package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/registra-backend/internal/model"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *model.CourseMaterial) error
	GetForCourse(ctx context.Context, courseID, materialID int) (*model.CourseMaterial, error)
	ListByCourse(ctx context.Context, courseID int) ([]model.CourseMaterial, error)
	Delete(ctx context.Context, id int) error
	ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error)
	ListStoragePathsByCourse(ctx context.Context, courseID int) ([]string, error)
}

type materialRepository struct {
	pool *pgxpool.Pool
}

func NewMaterialRepository(pool *pgxpool.Pool) MaterialRepository {
	return &materialRepository{pool: pool}
}

// Create inserts a material row. A foreign-key violation means the course
// disappeared between validation and insert, surfaced as ErrCourseNotFound.
func (r *materialRepository) Create(ctx context.Context, m *model.CourseMaterial) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO course_materials (course_id, file_name, storage_path)
		 VALUES ($1, $2, $3)
		 RETURNING id, uploaded_at`,
		m.CourseID, m.FileName, m.StoragePath,
	).Scan(&m.ID, &m.UploadedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}

// GetForCourse retrieves a material by ID, scoped to its course so a material
// of one course can never be addressed through another.
func (r *materialRepository) GetForCourse(ctx context.Context, courseID, materialID int) (*model.CourseMaterial, error) {
	m := &model.CourseMaterial{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, file_name, storage_path, uploaded_at
		 FROM course_materials WHERE id = $1 AND course_id = $2`,
		materialID, courseID,
	).Scan(&m.ID, &m.CourseID, &m.FileName, &m.StoragePath, &m.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListByCourse retrieves all materials of a course.
func (r *materialRepository) ListByCourse(ctx context.Context, courseID int) ([]model.CourseMaterial, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, file_name, storage_path, uploaded_at
		 FROM course_materials WHERE course_id = $1 ORDER BY uploaded_at DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := []model.CourseMaterial{}
	for rows.Next() {
		var m model.CourseMaterial
		if err := rows.Scan(&m.ID, &m.CourseID, &m.FileName, &m.StoragePath, &m.UploadedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// Delete removes a material row by ID.
func (r *materialRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM course_materials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMaterialNotFound
	}
	return nil
}

// ExistsByStoragePath reports whether any material row references the path.
// Used by the orphan sweeper to decide whether a file on disk is owned.
func (r *materialRepository) ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_materials WHERE storage_path = $1)`, storagePath,
	).Scan(&exists)
	return exists, err
}

// ListStoragePathsByCourse returns the storage paths of all materials of a
// course, for file cleanup when the course is deleted.
func (r *materialRepository) ListStoragePathsByCourse(ctx context.Context, courseID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT storage_path FROM course_materials WHERE course_id = $1`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
