package models

import (
	"fmt"
	"strings"
	"time"
)

type CartItem struct {
	ID           string
	UserID       string
	InstrumentID string
	Quantidade   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CartEntry is a cart row joined with its instrument summary, as returned
// by GET /carrinho. FotoKey is the object key of the instrument's principal
// photo, when one exists.
type CartEntry struct {
	CartItem
	Nome    string
	Preco   float64
	FotoKey *string
}

// Purchase snapshots a checkout. Orders reference it by compra_id.
type Purchase struct {
	ID        string
	UserID    string
	Total     float64
	CreatedAt time.Time
}

type PurchaseItem struct {
	ID         string
	PurchaseID string
	Nome       string
	Preco      float64
	Quantidade int
}

// DeliveryStatus is the closed set accepted for a pedido's status_entrega.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pendente"
	DeliveryShipped   DeliveryStatus = "Enviado"
	DeliveryDelivered DeliveryStatus = "Entregue"
	DeliveryCancelled DeliveryStatus = "Cancelado"
)

// ParseDeliveryStatus maps caller text onto the closed enum, case
// insensitively. Unrecognized values are rejected rather than stored.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch strings.ToLower(s) {
	case "pendente":
		return DeliveryPending, nil
	case "enviado":
		return DeliveryShipped, nil
	case "entregue":
		return DeliveryDelivered, nil
	case "cancelado":
		return DeliveryCancelled, nil
	}
	return "", fmt.Errorf("status de entrega inválido: %q", s)
}

// OrderPaymentStatus is the payment axis of a pedido. It is never set by
// callers directly, only derived from payment status updates.
type OrderPaymentStatus string

const (
	OrderPaymentPending   OrderPaymentStatus = "Pendente"
	OrderPaymentPaid      OrderPaymentStatus = "Pago"
	OrderPaymentCancelled OrderPaymentStatus = "Pagamento Cancelado"
)

// DeriveOrderPaymentStatus maps a payment's raw status text onto the linked
// order's payment axis. The match is case-insensitive and anything outside
// the three recognized values falls back to Pendente.
func DeriveOrderPaymentStatus(paymentStatus string) OrderPaymentStatus {
	switch strings.ToLower(paymentStatus) {
	case "aprovado":
		return OrderPaymentPaid
	case "recusado", "cancelado":
		return OrderPaymentCancelled
	}
	return OrderPaymentPending
}

// ParseOrderPaymentStatus validates caller-supplied text for the payment
// axis on order creation and update. Unlike DeriveOrderPaymentStatus it
// rejects instead of falling back.
func ParseOrderPaymentStatus(s string) (OrderPaymentStatus, error) {
	switch strings.ToLower(s) {
	case "pendente":
		return OrderPaymentPending, nil
	case "pago":
		return OrderPaymentPaid, nil
	case "pagamento cancelado":
		return OrderPaymentCancelled, nil
	}
	return "", fmt.Errorf("status de pagamento inválido: %q", s)
}

type Order struct {
	ID              string
	UserID          string
	PurchaseID      string
	StatusEntrega   DeliveryStatus
	StatusPagamento OrderPaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderDetail is an order joined with its purchase snapshot.
type OrderDetail struct {
	Order
	Purchase Purchase
}

// Payment records one payment attempt against an order. Status stores the
// caller-supplied text verbatim; only the derived order status is closed.
type Payment struct {
	ID        string
	OrderID   string
	Metodo    string
	Valor     float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const PaymentInitialStatus = "Pendente"
