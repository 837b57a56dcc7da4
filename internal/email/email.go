// Package email talks to the hosted transactional-email collaborator.
// Sends are best effort: callers log failures and never roll back orders.
package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"

	"vrukshavalli/internal/domain"
)

type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindShipped      Kind = "shipped"
	KindDelivered    Kind = "delivered"
)

// Message is one order notification.
type Message struct {
	To              string
	OrderID         string
	Kind            Kind
	CustomerName    string
	Items           []domain.OrderLine
	Total           int64
	ShippingAddress string
}

type Sender interface {
	SendOrderEmail(ctx context.Context, m Message) error
}

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) SendOrderEmail(ctx context.Context, m Message) error {
	subject, html := render(m)
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{m.To},
		Subject: subject,
		Html:    html,
	})
	return err
}

func render(m Message) (subject, html string) {
	var b strings.Builder
	switch m.Kind {
	case KindShipped:
		subject = "🚚 Good news — Your plant is on the move!"
		fmt.Fprintf(&b, "<h1>Your plants are coming! 🌱</h1><p>Hi %s,</p>", m.CustomerName)
		fmt.Fprintf(&b, "<p>Great news! Your order <strong>%s</strong> has been shipped and is on its way to you.</p>", m.OrderID)
	case KindDelivered:
		subject = "🎉 Your plants have arrived!"
		fmt.Fprintf(&b, "<h1>Welcome your new green friends! 🌿</h1><p>Hi %s,</p>", m.CustomerName)
		fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> has been delivered! We hope your plants bring joy to your space.</p>", m.OrderID)
	default:
		subject = fmt.Sprintf("🌱 Yay! Your Vrukshavalli order %s is confirmed!", m.OrderID)
		fmt.Fprintf(&b, "<h1>Bring home a green friend! 🌿</h1><p>Hi %s,</p>", m.CustomerName)
		fmt.Fprintf(&b, "<p>Thank you for your order! We're excited to get your plants ready.</p>")
		fmt.Fprintf(&b, "<p><strong>Order ID:</strong> %s</p><table>", m.OrderID)
		for _, it := range m.Items {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>₹%d</td></tr>", it.Name, it.Qty, it.PriceAtTime*int64(it.Qty))
		}
		fmt.Fprintf(&b, "<tr><td colspan=2><strong>Total</strong></td><td>₹%d</td></tr></table>", m.Total)
		if m.ShippingAddress != "" {
			fmt.Fprintf(&b, "<p><strong>Shipping to:</strong><br>%s</p>", strings.ReplaceAll(m.ShippingAddress, "\n", "<br>"))
		}
	}
	b.WriteString(`<p>Follow us on Instagram: @Vrukshavalli_Ratnagiri</p>`)
	return subject, b.String()
}

// LogSender is used when no API key is configured; it records the send
// locally so development environments stay email-free.
type LogSender struct{}

func (LogSender) SendOrderEmail(_ context.Context, m Message) error {
	log.Printf("[email] skipped %s mail for order %s to %s (no API key)", m.Kind, m.OrderID, m.To)
	return nil
}

// New picks the real sender when a key is configured.
func New(apiKey, from string) Sender {
	if apiKey == "" {
		return LogSender{}
	}
	return NewResendSender(apiKey, from)
}
