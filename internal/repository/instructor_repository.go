package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/registra-backend/internal/model"
)

type InstructorRepository interface {
	Create(ctx context.Context, i *model.Instructor) error
	GetByID(ctx context.Context, id int) (*model.Instructor, error)
	GetByUsername(ctx context.Context, username string) (*model.Instructor, error)
}

type instructorRepository struct {
	db *pgxpool.Pool
}

func NewInstructorRepository(db *pgxpool.Pool) InstructorRepository {
	return &instructorRepository{db: db}
}

func (r *instructorRepository) Create(ctx context.Context, i *model.Instructor) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO instructors (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		i.Username, i.PasswordHash,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *instructorRepository) GetByID(ctx context.Context, id int) (*model.Instructor, error) {
	i := &model.Instructor{}
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM instructors WHERE id = $1`, id,
	).Scan(&i.ID, &i.Username, &i.PasswordHash, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *instructorRepository) GetByUsername(ctx context.Context, username string) (*model.Instructor, error) {
	i := &model.Instructor{}
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM instructors WHERE username = $1`, username,
	).Scan(&i.ID, &i.Username, &i.PasswordHash, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}
