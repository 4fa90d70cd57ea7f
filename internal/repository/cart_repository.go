package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"palcolivre/api/internal/models"
	"palcolivre/api/internal/service"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Upsert relies on the (user_id, instrumento_id) unique constraint: adding
// an instrument already in the cart increments its quantity in the same
// statement, so two concurrent adds can never produce duplicate rows.
func (r *CartRepository) Upsert(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	const query = `
		INSERT INTO carrinho (id, user_id, instrumento_id, quantidade, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, instrumento_id)
		DO UPDATE SET
			quantidade = carrinho.quantidade + EXCLUDED.quantidade,
			updated_at = NOW()
		RETURNING id, user_id, instrumento_id, quantidade, created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, query, item.ID, item.UserID, item.InstrumentID, item.Quantidade)
	var saved models.CartItem
	if err := row.Scan(
		&saved.ID,
		&saved.UserID,
		&saved.InstrumentID,
		&saved.Quantidade,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	); err != nil {
		return models.CartItem{}, err
	}
	return saved, nil
}

const cartEntryQuery = `
	SELECT c.id, c.user_id, c.instrumento_id, c.quantidade, c.created_at, c.updated_at,
	       i.nome, i.preco, f.object_key
	FROM carrinho c
	JOIN instrumentos i ON i.id = c.instrumento_id
	LEFT JOIN fotos f ON f.instrumento_id = i.id AND f.principal
	WHERE c.user_id = $1
	ORDER BY c.updated_at DESC
`

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartEntry, error) {
	rows, err := r.pool.Query(ctx, cartEntryQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCartEntries(rows)
}

// EntriesForCheckout returns the same join; checkout reads it right before
// snapshotting so the purchase reflects current prices.
func (r *CartRepository) EntriesForCheckout(ctx context.Context, userID string) ([]models.CartEntry, error) {
	return r.ListByUser(ctx, userID)
}

func (r *CartRepository) Delete(ctx context.Context, userID string, itemID string) error {
	const query = `DELETE FROM carrinho WHERE id = $1 AND user_id = $2`
	cmd, err := r.pool.Exec(ctx, query, itemID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func scanCartEntries(rows pgx.Rows) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	for rows.Next() {
		var entry models.CartEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.InstrumentID,
			&entry.Quantidade,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&entry.Nome,
			&entry.Preco,
			&entry.FotoKey,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return entries, nil
}
