package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"palcolivre/api/internal/models"
	"palcolivre/api/internal/service"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, payment models.Payment) error {
	const query = `
		INSERT INTO pagamentos (
			id, pedido_id, metodo, valor, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.Metodo,
		payment.Valor,
		payment.Status,
	)
	return err
}

const paymentColumns = `
	pg.id, pg.pedido_id, pg.metodo, pg.valor, pg.status, pg.created_at, pg.updated_at
`

// GetByID re-derives ownership through the pedido join; payments of other
// users are indistinguishable from absent ones.
func (r *PaymentRepository) GetByID(ctx context.Context, userID string, paymentID string) (models.Payment, error) {
	const query = `
		SELECT ` + paymentColumns + `
		FROM pagamentos pg
		JOIN pedidos p ON p.id = pg.pedido_id
		WHERE pg.id = $1 AND p.user_id = $2
	`

	row := r.pool.QueryRow(ctx, query, paymentID, userID)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Payment{}, service.ErrNotFound
		}
		return models.Payment{}, err
	}
	return payment, nil
}

// UpdateStatus writes the raw payment status and the derived order payment
// status inside one transaction so the two rows can never disagree.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, userID string, paymentID string, status string, derived models.OrderPaymentStatus) (models.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Payment{}, err
	}
	defer tx.Rollback(ctx)

	const updatePayment = `
		UPDATE pagamentos pg
		SET status = $3, updated_at = NOW()
		FROM pedidos p
		WHERE pg.id = $1 AND p.id = pg.pedido_id AND p.user_id = $2
		RETURNING ` + paymentColumns + `
	`

	row := tx.QueryRow(ctx, updatePayment, paymentID, userID, status)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Payment{}, service.ErrNotFound
		}
		return models.Payment{}, err
	}

	const updateOrder = `
		UPDATE pedidos SET status_pagamento = $2, updated_at = NOW() WHERE id = $1
	`
	if _, err := tx.Exec(ctx, updateOrder, payment.OrderID, derived); err != nil {
		return models.Payment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.Metodo,
		&payment.Valor,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	return payment, err
}
