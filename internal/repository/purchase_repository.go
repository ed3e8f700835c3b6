package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

// PurchaseRepository defines persistence access for purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Purchase, error)
	ListAll(ctx context.Context) ([]*domain.Purchase, error)
}

type purchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository returns a Postgres-backed implementation.
func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{pool: pool}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	const query = `
        INSERT INTO purchases (account_id, toy_id, price_cents, currency, payment_transaction_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		purchase.AccountID,
		purchase.ToyID,
		purchase.PriceCents,
		purchase.Currency,
		purchase.PaymentTransactionID,
	).Scan(&purchase.ID, &purchase.CreatedAt)
}

func (r *purchaseRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Purchase, error) {
	const query = `
        SELECT id, account_id, toy_id, price_cents, currency, payment_transaction_id, created_at
        FROM purchases WHERE account_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]*domain.Purchase, error) {
	const query = `
        SELECT id, account_id, toy_id, price_cents, currency, payment_transaction_id, created_at
        FROM purchases ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func scanPurchases(rows pgx.Rows) ([]*domain.Purchase, error) {
	var purchases []*domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(
			&p.ID,
			&p.AccountID,
			&p.ToyID,
			&p.PriceCents,
			&p.Currency,
			&p.PaymentTransactionID,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}
