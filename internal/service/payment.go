package service

import (
	"context"

	"palcolivre/api/internal/events"
	"palcolivre/api/internal/ids"
	"palcolivre/api/internal/models"
)

type CreatePaymentInput struct {
	OrderID string
	Metodo  string
	Valor   *float64
}

type PaymentService interface {
	Create(ctx context.Context, userID string, input CreatePaymentInput) (models.Payment, error)
	Get(ctx context.Context, userID string, paymentID string) (models.Payment, error)
	// UpdateStatus stores the caller text verbatim on the payment and
	// derives the linked order's payment axis from it.
	UpdateStatus(ctx context.Context, userID string, paymentID string, status string) (models.Payment, error)
}

type paymentService struct {
	payments  PaymentStore
	orders    OrderStore
	publisher *events.Publisher
}

func NewPaymentService(payments PaymentStore, orders OrderStore, publisher *events.Publisher) PaymentService {
	return &paymentService{
		payments:  payments,
		orders:    orders,
		publisher: publisher,
	}
}

func (s *paymentService) Create(ctx context.Context, userID string, input CreatePaymentInput) (models.Payment, error) {
	if input.OrderID == "" || input.Metodo == "" || input.Valor == nil {
		return models.Payment{}, ValidationError("todos os campos são obrigatórios")
	}
	if *input.Valor <= 0 {
		return models.Payment{}, ValidationError("valor deve ser maior que zero")
	}

	// The referenced pedido must exist and belong to the caller.
	if _, err := s.orders.GetByID(ctx, userID, input.OrderID); err != nil {
		return models.Payment{}, err
	}

	payment := models.Payment{
		ID:      ids.New(),
		OrderID: input.OrderID,
		Metodo:  input.Metodo,
		Valor:   *input.Valor,
		Status:  models.PaymentInitialStatus,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (s *paymentService) Get(ctx context.Context, userID string, paymentID string) (models.Payment, error) {
	return s.payments.GetByID(ctx, userID, paymentID)
}

func (s *paymentService) UpdateStatus(ctx context.Context, userID string, paymentID string, status string) (models.Payment, error) {
	if status == "" {
		return models.Payment{}, ValidationError("informe o novo status")
	}

	derived := models.DeriveOrderPaymentStatus(status)

	payment, err := s.payments.UpdateStatus(ctx, userID, paymentID, status, derived)
	if err != nil {
		return models.Payment{}, err
	}

	s.publisher.PaymentUpdated(ctx, payment, derived)
	return payment, nil
}
