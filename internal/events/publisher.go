package events

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"palcolivre/api/internal/models"
)

const Stream = "pedidos:eventos"

// Publisher pushes order lifecycle events onto a redis stream for
// downstream consumers. Publishing is best-effort: a failed XAdd is logged
// and never fails the request that produced the event.
type Publisher struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewPublisher(client *redis.Client, log zerolog.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

func (p *Publisher) OrderCreated(ctx context.Context, order models.Order) {
	p.publish(ctx, map[string]any{
		"type":            "pedido_criado",
		"pedidoId":        order.ID,
		"compraId":        order.PurchaseID,
		"statusEntrega":   string(order.StatusEntrega),
		"statusPagamento": string(order.StatusPagamento),
	})
}

func (p *Publisher) PaymentUpdated(ctx context.Context, payment models.Payment, derived models.OrderPaymentStatus) {
	p.publish(ctx, map[string]any{
		"type":            "pagamento_atualizado",
		"pagamentoId":     payment.ID,
		"pedidoId":        payment.OrderID,
		"status":          payment.Status,
		"statusPagamento": string(derived),
	})
}

func (p *Publisher) publish(ctx context.Context, payload map[string]any) {
	if p == nil || p.client == nil {
		return
	}

	if _, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: Stream,
		Values: payload,
	}).Result(); err != nil {
		p.log.Warn().Err(err).Interface("payload", payload).Msg("publish event failed")
	}
}
