package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"palcolivre/api/internal/models"
	"palcolivre/api/internal/service"
)

type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

// SetPrincipal demotes the owner's previous principal photo and inserts the
// new one inside a single transaction, so there is never more than one
// principal per owner.
func (r *PhotoRepository) SetPrincipal(ctx context.Context, photo models.Photo) error {
	if photo.UserID == nil && photo.InstrumentID == nil {
		return fmt.Errorf("photo without owner")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if photo.UserID != nil {
		const demote = `UPDATE fotos SET principal = FALSE WHERE user_id = $1 AND principal`
		if _, err := tx.Exec(ctx, demote, *photo.UserID); err != nil {
			return err
		}
	} else {
		const demote = `UPDATE fotos SET principal = FALSE WHERE instrumento_id = $1 AND principal`
		if _, err := tx.Exec(ctx, demote, *photo.InstrumentID); err != nil {
			return err
		}
	}

	const insert = `
		INSERT INTO fotos (id, user_id, instrumento_id, object_key, principal, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
	`
	if _, err := tx.Exec(ctx, insert, photo.ID, photo.UserID, photo.InstrumentID, photo.ObjectKey); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PhotoRepository) PrincipalForUser(ctx context.Context, userID string) (models.Photo, error) {
	const query = `
		SELECT id, user_id, instrumento_id, object_key, principal, created_at
		FROM fotos
		WHERE user_id = $1 AND principal
	`
	return r.principal(ctx, query, userID)
}

func (r *PhotoRepository) PrincipalForInstrument(ctx context.Context, instrumentID string) (models.Photo, error) {
	const query = `
		SELECT id, user_id, instrumento_id, object_key, principal, created_at
		FROM fotos
		WHERE instrumento_id = $1 AND principal
	`
	return r.principal(ctx, query, instrumentID)
}

func (r *PhotoRepository) principal(ctx context.Context, query string, ownerID string) (models.Photo, error) {
	row := r.pool.QueryRow(ctx, query, ownerID)
	var photo models.Photo
	if err := row.Scan(
		&photo.ID,
		&photo.UserID,
		&photo.InstrumentID,
		&photo.ObjectKey,
		&photo.Principal,
		&photo.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Photo{}, service.ErrNotFound
		}
		return models.Photo{}, err
	}
	return photo, nil
}
