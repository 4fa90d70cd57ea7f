package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v5"

	"palcolivre/api/internal/config"
	"palcolivre/api/internal/models"
)

// Mailer sends transactional mail through mailgun. When the mailgun
// credentials are absent it stays disabled and every send is a no-op error,
// which callers treat as best-effort.
type Mailer struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	enabled     bool
}

func NewMailer(cfg config.MailConfig) *Mailer {
	enabled := cfg.Domain != "" && cfg.APIKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.APIKey)
	}

	return &Mailer{
		client:      client,
		domain:      cfg.Domain,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		enabled:     enabled,
	}
}

func (m *Mailer) IsEnabled() bool {
	return m != nil && m.enabled
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, user models.User, purchase models.Purchase, items []models.PurchaseItem) error {
	if !m.IsEnabled() {
		return fmt.Errorf("email service is not configured")
	}

	subject := "Recebemos o seu pedido!"
	body := OrderConfirmationText(user, purchase, items)

	message := mailgun.NewMessage(
		m.domain,
		fmt.Sprintf("%s <%s>", m.senderName, m.senderEmail),
		subject,
		body,
		user.Email,
	)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := m.client.Send(ctx, message); err != nil {
		return fmt.Errorf("send order confirmation to %s: %w", user.Email, err)
	}
	return nil
}

func OrderConfirmationText(user models.User, purchase models.Purchase, items []models.PurchaseItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Olá, %s!\n\n", user.Nome)
	b.WriteString("Recebemos o seu pedido. Itens:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  %dx %s - R$ %.2f\n", item.Quantidade, item.Nome, item.Preco)
	}
	fmt.Fprintf(&b, "\nTotal: R$ %.2f\n", purchase.Total)
	b.WriteString("\nVocê pode acompanhar a entrega na página de pedidos.\n")

	return b.String()
}
