package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/registra-backend/internal/model"
)

type MajorRepository interface {
	GetAll(ctx context.Context) ([]*model.Major, error)
	GetByID(ctx context.Context, id int) (*model.Major, error)
}

type majorRepository struct {
	db *pgxpool.Pool
}

func NewMajorRepository(db *pgxpool.Pool) MajorRepository {
	return &majorRepository{db: db}
}

func (r *majorRepository) GetAll(ctx context.Context) ([]*model.Major, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM majors ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []*model.Major
	for rows.Next() {
		m := &model.Major{}
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}

func (r *majorRepository) GetByID(ctx context.Context, id int) (*model.Major, error) {
	m := &model.Major{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM majors WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMajorNotFound
		}
		return nil, err
	}
	return m, nil
}
