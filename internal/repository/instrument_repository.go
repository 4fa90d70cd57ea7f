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

type InstrumentRepository struct {
	pool *pgxpool.Pool
}

func NewInstrumentRepository(pool *pgxpool.Pool) *InstrumentRepository {
	return &InstrumentRepository{pool: pool}
}

const instrumentColumns = `id, nome, categoria, marca, descricao, preco, estoque, created_at, updated_at`

func (r *InstrumentRepository) Create(ctx context.Context, instrument models.Instrument) error {
	const query = `
		INSERT INTO instrumentos (
			id, nome, categoria, marca, descricao, preco, estoque, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		instrument.ID,
		instrument.Nome,
		instrument.Categoria,
		instrument.Marca,
		instrument.Descricao,
		instrument.Preco,
		instrument.Estoque,
	)
	return err
}

func (r *InstrumentRepository) List(ctx context.Context) ([]models.Instrument, error) {
	query := fmt.Sprintf(`SELECT %s FROM instrumentos ORDER BY created_at DESC`, instrumentColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstruments(rows)
}

func (r *InstrumentRepository) GetByID(ctx context.Context, id string) (models.Instrument, error) {
	query := fmt.Sprintf(`SELECT %s FROM instrumentos WHERE id = $1`, instrumentColumns)

	row := r.pool.QueryRow(ctx, query, id)
	instrument, err := scanInstrument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Instrument{}, service.ErrNotFound
		}
		return models.Instrument{}, err
	}
	return instrument, nil
}

func (r *InstrumentRepository) Update(ctx context.Context, instrument models.Instrument) error {
	const query = `
		UPDATE instrumentos
		SET nome = $2, categoria = $3, marca = $4, descricao = $5,
		    preco = $6, estoque = $7, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		instrument.ID,
		instrument.Nome,
		instrument.Categoria,
		instrument.Marca,
		instrument.Descricao,
		instrument.Preco,
		instrument.Estoque,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *InstrumentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM instrumentos WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *InstrumentRepository) Search(ctx context.Context, filter models.InstrumentFilter) ([]models.Instrument, error) {
	query, args := searchQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstruments(rows)
}

// searchQuery builds the /buscar statement from whichever filters are set.
// A preco_min above preco_max simply matches nothing.
func searchQuery(filter models.InstrumentFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Nome != "" {
		add("nome ILIKE $%d", "%"+filter.Nome+"%")
	}
	if filter.Categoria != "" {
		add("categoria = $%d", filter.Categoria)
	}
	if filter.Marca != "" {
		add("marca = $%d", filter.Marca)
	}
	if filter.PrecoMin != nil {
		add("preco >= $%d", *filter.PrecoMin)
	}
	if filter.PrecoMax != nil {
		add("preco <= $%d", *filter.PrecoMax)
	}

	query := fmt.Sprintf(`SELECT %s FROM instrumentos`, instrumentColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY nome ASC"

	return query, args
}

func scanInstrument(row pgx.Row) (models.Instrument, error) {
	var instrument models.Instrument
	err := row.Scan(
		&instrument.ID,
		&instrument.Nome,
		&instrument.Categoria,
		&instrument.Marca,
		&instrument.Descricao,
		&instrument.Preco,
		&instrument.Estoque,
		&instrument.CreatedAt,
		&instrument.UpdatedAt,
	)
	return instrument, err
}

func scanInstruments(rows pgx.Rows) ([]models.Instrument, error) {
	var instruments []models.Instrument
	for rows.Next() {
		instrument, err := scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, instrument)
	}
	return instruments, rows.Err()
}
