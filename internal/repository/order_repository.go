package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"palcolivre/api/internal/models"
	"palcolivre/api/internal/service"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, order models.Order) error {
	const query = `
		INSERT INTO pedidos (
			id, user_id, compra_id, status_entrega, status_pagamento, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.PurchaseID,
		order.StatusEntrega,
		order.StatusPagamento,
	)
	return err
}

const orderDetailColumns = `
	p.id, p.user_id, p.compra_id, p.status_entrega, p.status_pagamento, p.created_at, p.updated_at,
	c.id, c.user_id, c.total, c.created_at
`

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.OrderDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pedidos p
		JOIN compras c ON c.id = p.compra_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`, orderDetailColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderDetail
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, detail)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) GetByID(ctx context.Context, userID string, orderID string) (models.OrderDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pedidos p
		JOIN compras c ON c.id = p.compra_id
		WHERE p.id = $1 AND p.user_id = $2
	`, orderDetailColumns)

	row := r.pool.QueryRow(ctx, query, orderID, userID)
	detail, err := scanOrderDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.OrderDetail{}, service.ErrNotFound
		}
		return models.OrderDetail{}, err
	}
	return detail, nil
}

func (r *OrderRepository) UpdateStatuses(ctx context.Context, userID string, orderID string, entrega *models.DeliveryStatus, pagamento *models.OrderPaymentStatus) error {
	var (
		sets []string
		args = []any{orderID, userID}
	)

	if entrega != nil {
		args = append(args, *entrega)
		sets = append(sets, fmt.Sprintf("status_entrega = $%d", len(args)))
	}
	if pagamento != nil {
		args = append(args, *pagamento)
		sets = append(sets, fmt.Sprintf("status_pagamento = $%d", len(args)))
	}
	if len(sets) == 0 {
		return service.ValidationError("informe pelo menos um status para atualizar")
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE pedidos SET %s WHERE id = $1 AND user_id = $2`, strings.Join(sets, ", "))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) PurchaseByID(ctx context.Context, userID string, purchaseID string) (models.Purchase, error) {
	const query = `
		SELECT id, user_id, total, created_at
		FROM compras
		WHERE id = $1 AND user_id = $2
	`

	row := r.pool.QueryRow(ctx, query, purchaseID, userID)
	var purchase models.Purchase
	if err := row.Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.Total,
		&purchase.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Purchase{}, service.ErrNotFound
		}
		return models.Purchase{}, err
	}
	return purchase, nil
}

// CreateFromCart persists the checkout snapshot: the compra, its item rows,
// the pedido, and the cart cleanup all commit or roll back together.
func (r *OrderRepository) CreateFromCart(ctx context.Context, order models.Order, purchase models.Purchase, items []models.PurchaseItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertPurchase = `
		INSERT INTO compras (id, user_id, total, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := tx.Exec(ctx, insertPurchase, purchase.ID, purchase.UserID, purchase.Total); err != nil {
		return err
	}

	const insertItem = `
		INSERT INTO compra_itens (id, compra_id, nome, preco, quantidade)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, insertItem, item.ID, item.PurchaseID, item.Nome, item.Preco, item.Quantidade); err != nil {
			return err
		}
	}

	const insertOrder = `
		INSERT INTO pedidos (
			id, user_id, compra_id, status_entrega, status_pagamento, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`
	if _, err := tx.Exec(ctx, insertOrder, order.ID, order.UserID, order.PurchaseID, order.StatusEntrega, order.StatusPagamento); err != nil {
		return err
	}

	const clearCart = `DELETE FROM carrinho WHERE user_id = $1`
	if _, err := tx.Exec(ctx, clearCart, order.UserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanOrderDetail(row pgx.Row) (models.OrderDetail, error) {
	var detail models.OrderDetail
	err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&detail.PurchaseID,
		&detail.StatusEntrega,
		&detail.StatusPagamento,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Purchase.ID,
		&detail.Purchase.UserID,
		&detail.Purchase.Total,
		&detail.Purchase.CreatedAt,
	)
	return detail, err
}
