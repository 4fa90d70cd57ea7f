package models

import "time"

type Instrument struct {
	ID        string
	Nome      string
	Categoria string
	Marca     string
	Descricao *string
	Preco     float64
	Estoque   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Photo belongs either to a user (profile photo) or to an instrument.
// At most one photo per owner carries the principal flag.
type Photo struct {
	ID           string
	UserID       *string
	InstrumentID *string
	ObjectKey    string
	Principal    bool
	CreatedAt    time.Time
}

// InstrumentFilter holds the /buscar search parameters. Zero values mean
// the corresponding filter is off.
type InstrumentFilter struct {
	Nome      string
	Categoria string
	Marca     string
	PrecoMin  *float64
	PrecoMax  *float64
}
