package service

import (
	"context"
	"errors"
	"testing"

	"palcolivre/api/internal/models"
)

func newTestPaymentService() (PaymentService, *fakePaymentStore, *fakeOrderStore) {
	instruments := newFakeInstrumentStore()
	cart := newFakeCartStore(instruments)
	orders := newFakeOrderStore(cart)
	payments := newFakePaymentStore(orders)
	svc := NewPaymentService(payments, orders, nil)
	return svc, payments, orders
}

func seedOrder(orders *fakeOrderStore, id string, userID string) {
	orders.orders[id] = models.Order{
		ID: id, UserID: userID, PurchaseID: "compra-" + id,
		StatusEntrega:   models.DeliveryPending,
		StatusPagamento: models.OrderPaymentPending,
	}
}

func TestPaymentCreate(t *testing.T) {
	svc, _, orders := newTestPaymentService()
	ctx := context.Background()
	seedOrder(orders, "ped-1", "user-1")

	payment, err := svc.Create(ctx, "user-1", CreatePaymentInput{
		OrderID: "ped-1",
		Metodo:  "pix",
		Valor:   floatPtr(150.50),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if payment.Status != models.PaymentInitialStatus {
		t.Errorf("Status = %q, want %q", payment.Status, models.PaymentInitialStatus)
	}
	if payment.Valor != 150.50 {
		t.Errorf("Valor = %v", payment.Valor)
	}
}

func TestPaymentCreateValidation(t *testing.T) {
	svc, _, orders := newTestPaymentService()
	ctx := context.Background()
	seedOrder(orders, "ped-1", "user-1")

	cases := []CreatePaymentInput{
		{Metodo: "pix", Valor: floatPtr(10)},
		{OrderID: "ped-1", Valor: floatPtr(10)},
		{OrderID: "ped-1", Metodo: "pix"},
		{OrderID: "ped-1", Metodo: "pix", Valor: floatPtr(0)},
		{OrderID: "ped-1", Metodo: "pix", Valor: floatPtr(-5)},
	}
	for i, input := range cases {
		if _, err := svc.Create(ctx, "user-1", input); !IsValidation(err) {
			t.Errorf("case %d: got %v, want validation error", i, err)
		}
	}

	input := CreatePaymentInput{OrderID: "ped-1", Metodo: "pix", Valor: floatPtr(10)}
	if _, err := svc.Create(ctx, "user-2", input); !errors.Is(err, ErrNotFound) {
		t.Errorf("someone else's order: got %v, want ErrNotFound", err)
	}
}

func TestPaymentUpdateDrivesOrderStatus(t *testing.T) {
	svc, payments, orders := newTestPaymentService()
	ctx := context.Background()
	seedOrder(orders, "ped-1", "user-1")

	created, err := svc.Create(ctx, "user-1", CreatePaymentInput{
		OrderID: "ped-1", Metodo: "cartao", Valor: floatPtr(99),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []struct {
		status string
		want   models.OrderPaymentStatus
	}{
		{"Aprovado", models.OrderPaymentPaid},
		{"recusado", models.OrderPaymentCancelled},
		{"em análise", models.OrderPaymentPending},
		{"CANCELADO", models.OrderPaymentCancelled},
	}

	for _, tc := range cases {
		updated, err := svc.UpdateStatus(ctx, "user-1", created.ID, tc.status)
		if err != nil {
			t.Fatalf("UpdateStatus(%q): %v", tc.status, err)
		}
		// The payment keeps the caller text verbatim.
		if updated.Status != tc.status {
			t.Errorf("payment status = %q, want %q", updated.Status, tc.status)
		}
		if got := orders.orders["ped-1"].StatusPagamento; got != tc.want {
			t.Errorf("order status after %q = %q, want %q", tc.status, got, tc.want)
		}
	}

	if payments.payments[created.ID].Status != "CANCELADO" {
		t.Errorf("stored payment status = %q", payments.payments[created.ID].Status)
	}
}

func TestPaymentUpdateValidation(t *testing.T) {
	svc, _, orders := newTestPaymentService()
	ctx := context.Background()
	seedOrder(orders, "ped-1", "user-1")

	created, err := svc.Create(ctx, "user-1", CreatePaymentInput{
		OrderID: "ped-1", Metodo: "pix", Valor: floatPtr(10),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, "user-1", created.ID, ""); !IsValidation(err) {
		t.Errorf("empty status: got %v, want validation error", err)
	}
	if _, err := svc.UpdateStatus(ctx, "user-2", created.ID, "aprovado"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user update: got %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(ctx, "user-2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user get: got %v, want ErrNotFound", err)
	}
}
