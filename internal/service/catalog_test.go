package service

import (
	"context"
	"errors"
	"testing"

	"palcolivre/api/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func validInstrumentInput() InstrumentInput {
	return InstrumentInput{
		Nome:      "Violão Clássico",
		Categoria: "cordas",
		Marca:     "Yamaha",
		Preco:     floatPtr(1200),
		Estoque:   intPtr(3),
	}
}

func TestCatalogCreateAndGet(t *testing.T) {
	instruments := newFakeInstrumentStore()
	svc := NewCatalogService(instruments)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInstrumentInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created instrument should have an id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Nome != "Violão Clássico" {
		t.Errorf("Nome = %q", got.Nome)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	svc := NewCatalogService(newFakeInstrumentStore())
	ctx := context.Background()

	mutations := []func(*InstrumentInput){
		func(i *InstrumentInput) { i.Nome = "  " },
		func(i *InstrumentInput) { i.Categoria = "" },
		func(i *InstrumentInput) { i.Marca = "" },
		func(i *InstrumentInput) { i.Preco = nil },
		func(i *InstrumentInput) { i.Estoque = nil },
		func(i *InstrumentInput) { i.Preco = floatPtr(-1) },
		func(i *InstrumentInput) { i.Estoque = intPtr(-1) },
	}

	for i, mutate := range mutations {
		input := validInstrumentInput()
		mutate(&input)
		if _, err := svc.Create(ctx, input); !IsValidation(err) {
			t.Errorf("case %d: got %v, want validation error", i, err)
		}
	}

	// Zero price and zero stock are legal.
	input := validInstrumentInput()
	input.Preco = floatPtr(0)
	input.Estoque = intPtr(0)
	if _, err := svc.Create(ctx, input); err != nil {
		t.Errorf("zero price and stock should pass: %v", err)
	}
}

func TestCatalogUpdateMissing(t *testing.T) {
	svc := NewCatalogService(newFakeInstrumentStore())

	if _, err := svc.Update(context.Background(), "nao-existe", validInstrumentInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCatalogDeleteMissing(t *testing.T) {
	svc := NewCatalogService(newFakeInstrumentStore())

	if err := svc.Delete(context.Background(), "nao-existe"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCatalogSearchDelegatesFilter(t *testing.T) {
	instruments := newFakeInstrumentStore()
	svc := NewCatalogService(instruments)
	ctx := context.Background()

	seedInstrument(instruments, "inst-1", "Guitarra", 4500)
	seedInstrument(instruments, "inst-2", "Baixo", 3000)
	instruments.instruments["inst-3"] = models.Instrument{
		ID: "inst-3", Nome: "Bateria", Categoria: "percussao", Marca: "Pearl", Preco: 8000, Estoque: 1,
	}

	results, err := svc.Search(ctx, models.InstrumentFilter{Categoria: "cordas", PrecoMax: floatPtr(4000)})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Nome != "Baixo" {
		t.Fatalf("results = %+v, want only Baixo", results)
	}

	// Nome is a case-insensitive substring match.
	results, err = svc.Search(ctx, models.InstrumentFilter{Nome: "guit"})
	if err != nil {
		t.Fatalf("Search by nome: %v", err)
	}
	if len(results) != 1 || results[0].Nome != "Guitarra" {
		t.Fatalf("results = %+v, want only Guitarra", results)
	}
}
