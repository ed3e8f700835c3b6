package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// ToyRepository defines persistence access for toys.
type ToyRepository interface {
	Create(ctx context.Context, toy *domain.Toy) error
	Update(ctx context.Context, toy *domain.Toy) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Toy, error)
	List(ctx context.Context) ([]*domain.Toy, error)
}

type toyRepository struct {
	pool *pgxpool.Pool
}

// NewToyRepository returns a Postgres-backed implementation.
func NewToyRepository(pool *pgxpool.Pool) ToyRepository {
	return &toyRepository{pool: pool}
}

func (r *toyRepository) Create(ctx context.Context, toy *domain.Toy) error {
	const query = `
        INSERT INTO toys (name, description, price_cents, currency)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		toy.Name,
		toy.Description,
		toy.PriceCents,
		toy.Currency,
	).Scan(&toy.ID, &toy.CreatedAt, &toy.UpdatedAt)
}

func (r *toyRepository) Update(ctx context.Context, toy *domain.Toy) error {
	const query = `
        UPDATE toys SET name=$1, description=$2, price_cents=$3, currency=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		toy.Name,
		toy.Description,
		toy.PriceCents,
		toy.Currency,
		toy.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *toyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM toys WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *toyRepository) GetByID(ctx context.Context, id string) (*domain.Toy, error) {
	const query = `
        SELECT id, name, description, price_cents, currency, created_at, updated_at
        FROM toys WHERE id=$1`

	var toy domain.Toy
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&toy.ID,
		&toy.Name,
		&toy.Description,
		&toy.PriceCents,
		&toy.Currency,
		&toy.CreatedAt,
		&toy.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &toy, nil
}

func (r *toyRepository) List(ctx context.Context) ([]*domain.Toy, error) {
	const query = `
        SELECT id, name, description, price_cents, currency, created_at, updated_at
        FROM toys ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var toys []*domain.Toy
	for rows.Next() {
		var toy domain.Toy
		if err := rows.Scan(
			&toy.ID,
			&toy.Name,
			&toy.Description,
			&toy.PriceCents,
			&toy.Currency,
			&toy.CreatedAt,
			&toy.UpdatedAt,
		); err != nil {
			return nil, err
		}
		toys = append(toys, &toy)
	}
	return toys, rows.Err()
}
