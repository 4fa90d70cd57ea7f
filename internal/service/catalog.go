package service

import (
	"context"
	"strings"

	"palcolivre/api/internal/ids"
	"palcolivre/api/internal/models"
)

type InstrumentInput struct {
	Nome      string
	Categoria string
	Marca     string
	Descricao *string
	Preco     *float64
	Estoque   *int
}

type CatalogService interface {
	List(ctx context.Context) ([]models.Instrument, error)
	Get(ctx context.Context, id string) (models.Instrument, error)
	Create(ctx context.Context, input InstrumentInput) (models.Instrument, error)
	Update(ctx context.Context, id string, input InstrumentInput) (models.Instrument, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter models.InstrumentFilter) ([]models.Instrument, error)
}

type catalogService struct {
	instruments InstrumentStore
}

func NewCatalogService(instruments InstrumentStore) CatalogService {
	return &catalogService{instruments: instruments}
}

func (s *catalogService) List(ctx context.Context) ([]models.Instrument, error) {
	return s.instruments.List(ctx)
}

func (s *catalogService) Get(ctx context.Context, id string) (models.Instrument, error) {
	return s.instruments.GetByID(ctx, id)
}

func (s *catalogService) Create(ctx context.Context, input InstrumentInput) (models.Instrument, error) {
	instrument, err := instrumentFromInput(ids.New(), input)
	if err != nil {
		return models.Instrument{}, err
	}

	if err := s.instruments.Create(ctx, instrument); err != nil {
		return models.Instrument{}, err
	}
	return instrument, nil
}

func (s *catalogService) Update(ctx context.Context, id string, input InstrumentInput) (models.Instrument, error) {
	instrument, err := instrumentFromInput(id, input)
	if err != nil {
		return models.Instrument{}, err
	}

	if err := s.instruments.Update(ctx, instrument); err != nil {
		return models.Instrument{}, err
	}
	return instrument, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.instruments.Delete(ctx, id)
}

func (s *catalogService) Search(ctx context.Context, filter models.InstrumentFilter) ([]models.Instrument, error) {
	return s.instruments.Search(ctx, filter)
}

func instrumentFromInput(id string, input InstrumentInput) (models.Instrument, error) {
	input.Nome = strings.TrimSpace(input.Nome)
	input.Categoria = strings.TrimSpace(input.Categoria)
	input.Marca = strings.TrimSpace(input.Marca)

	if input.Nome == "" || input.Categoria == "" || input.Marca == "" || input.Preco == nil || input.Estoque == nil {
		return models.Instrument{}, ValidationError("preencha todos os campos obrigatórios")
	}
	if *input.Preco < 0 {
		return models.Instrument{}, ValidationError("preço não pode ser negativo")
	}
	if *input.Estoque < 0 {
		return models.Instrument{}, ValidationError("estoque não pode ser negativo")
	}

	return models.Instrument{
		ID:        id,
		Nome:      input.Nome,
		Categoria: input.Categoria,
		Marca:     input.Marca,
		Descricao: input.Descricao,
		Preco:     *input.Preco,
		Estoque:   *input.Estoque,
	}, nil
}
