package service

import (
	"context"

	"github.com/rs/zerolog"

	"palcolivre/api/internal/email"
	"palcolivre/api/internal/events"
	"palcolivre/api/internal/ids"
	"palcolivre/api/internal/models"
)

type CreateOrderInput struct {
	PurchaseID      string
	StatusEntrega   string
	StatusPagamento string
}

type UpdateOrderInput struct {
	StatusEntrega   *string
	StatusPagamento *string
}

type OrderService interface {
	Create(ctx context.Context, userID string, input CreateOrderInput) (models.Order, error)
	List(ctx context.Context, userID string) ([]models.OrderDetail, error)
	Get(ctx context.Context, userID string, orderID string) (models.OrderDetail, error)
	Update(ctx context.Context, userID string, orderID string, input UpdateOrderInput) error
	// Cancel flips the delivery axis to the Cancelado sentinel; the payment
	// axis stays whatever it was.
	Cancel(ctx context.Context, userID string, orderID string) error
	// Checkout turns the user's cart into a compra snapshot plus a pending
	// pedido, emptying the cart in the same transaction.
	Checkout(ctx context.Context, user models.User) (models.OrderDetail, error)
}

type orderService struct {
	orders    OrderStore
	cart      CartStore
	publisher *events.Publisher
	mailer    *email.Mailer
	log       zerolog.Logger
}

func NewOrderService(orders OrderStore, cart CartStore, publisher *events.Publisher, mailer *email.Mailer, log zerolog.Logger) OrderService {
	return &orderService{
		orders:    orders,
		cart:      cart,
		publisher: publisher,
		mailer:    mailer,
		log:       log,
	}
}

func (s *orderService) Create(ctx context.Context, userID string, input CreateOrderInput) (models.Order, error) {
	if input.PurchaseID == "" || input.StatusEntrega == "" || input.StatusPagamento == "" {
		return models.Order{}, ValidationError("todos os campos são obrigatórios")
	}

	entrega, err := models.ParseDeliveryStatus(input.StatusEntrega)
	if err != nil {
		return models.Order{}, ValidationError(err.Error())
	}
	pagamento, err := models.ParseOrderPaymentStatus(input.StatusPagamento)
	if err != nil {
		return models.Order{}, ValidationError(err.Error())
	}

	if _, err := s.orders.PurchaseByID(ctx, userID, input.PurchaseID); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ID:              ids.New(),
		UserID:          userID,
		PurchaseID:      input.PurchaseID,
		StatusEntrega:   entrega,
		StatusPagamento: pagamento,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return models.Order{}, err
	}

	s.publisher.OrderCreated(ctx, order)
	return order, nil
}

func (s *orderService) List(ctx context.Context, userID string) ([]models.OrderDetail, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *orderService) Get(ctx context.Context, userID string, orderID string) (models.OrderDetail, error) {
	return s.orders.GetByID(ctx, userID, orderID)
}

func (s *orderService) Update(ctx context.Context, userID string, orderID string, input UpdateOrderInput) error {
	if input.StatusEntrega == nil && input.StatusPagamento == nil {
		return ValidationError("informe pelo menos um status para atualizar")
	}

	var entrega *models.DeliveryStatus
	if input.StatusEntrega != nil {
		parsed, err := models.ParseDeliveryStatus(*input.StatusEntrega)
		if err != nil {
			return ValidationError(err.Error())
		}
		entrega = &parsed
	}

	var pagamento *models.OrderPaymentStatus
	if input.StatusPagamento != nil {
		parsed, err := models.ParseOrderPaymentStatus(*input.StatusPagamento)
		if err != nil {
			return ValidationError(err.Error())
		}
		pagamento = &parsed
	}

	return s.orders.UpdateStatuses(ctx, userID, orderID, entrega, pagamento)
}

func (s *orderService) Cancel(ctx context.Context, userID string, orderID string) error {
	cancelled := models.DeliveryCancelled
	return s.orders.UpdateStatuses(ctx, userID, orderID, &cancelled, nil)
}

func (s *orderService) Checkout(ctx context.Context, user models.User) (models.OrderDetail, error) {
	entries, err := s.cart.EntriesForCheckout(ctx, user.ID)
	if err != nil {
		return models.OrderDetail{}, err
	}
	if len(entries) == 0 {
		return models.OrderDetail{}, ValidationError("carrinho vazio")
	}

	purchase := models.Purchase{
		ID:     ids.New(),
		UserID: user.ID,
	}

	items := make([]models.PurchaseItem, 0, len(entries))
	for _, entry := range entries {
		purchase.Total += entry.Preco * float64(entry.Quantidade)
		items = append(items, models.PurchaseItem{
			ID:         ids.New(),
			PurchaseID: purchase.ID,
			Nome:       entry.Nome,
			Preco:      entry.Preco,
			Quantidade: entry.Quantidade,
		})
	}

	order := models.Order{
		ID:              ids.New(),
		UserID:          user.ID,
		PurchaseID:      purchase.ID,
		StatusEntrega:   models.DeliveryPending,
		StatusPagamento: models.OrderPaymentPending,
	}

	if err := s.orders.CreateFromCart(ctx, order, purchase, items); err != nil {
		return models.OrderDetail{}, err
	}

	s.publisher.OrderCreated(ctx, order)

	if s.mailer.IsEnabled() {
		if err := s.mailer.SendOrderConfirmation(ctx, user, purchase, items); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("order confirmation email failed")
		}
	}

	return models.OrderDetail{Order: order, Purchase: purchase}, nil
}
