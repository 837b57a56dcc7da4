package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vrukshavalli/internal/domain"
	"vrukshavalli/internal/email"
	applog "vrukshavalli/internal/log"
	"vrukshavalli/internal/notify"
	"vrukshavalli/internal/repos"
	"vrukshavalli/internal/validate"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrBadTransition = errors.New("invalid status transition")
)

// ValidationError reports a missing or invalid checkout field.
type ValidationError struct{ Field string }

func (e ValidationError) Error() string { return "missing or invalid " + e.Field }

// CheckoutForm is the shipping contact collected at checkout.
type CheckoutForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type OrderService struct {
	Cart    *CartService
	Orders  *repos.OrderRepo
	Pricing Calculator
	Mailer  email.Sender
	Hub     *notify.Hub

	// MailTimeout bounds the best-effort email call; zero means 15s.
	MailTimeout time.Duration
}

func NewOrderService(cart *CartService, orders *repos.OrderRepo, pricing Calculator, mailer email.Sender, hub *notify.Hub) *OrderService {
	return &OrderService{Cart: cart, Orders: orders, Pricing: pricing, Mailer: mailer, Hub: hub}
}

// Place runs the checkout flow: validate, snapshot the cart, persist the
// order and all its lines atomically, then clear the cart, fire the
// confirmation email best-effort and publish the insert event. Any
// persistence failure leaves the cart untouched so the user can resubmit;
// a resubmission mints a new order id.
func (s *OrderService) Place(sessionID string, form CheckoutForm) (string, error) {
	name, ok := validate.Name(form.Name)
	if !ok {
		return "", ValidationError{Field: "name"}
	}
	phone, ok := validate.Phone(form.Phone)
	if !ok {
		return "", ValidationError{Field: "phone"}
	}
	addr, ok := validate.Address(form.Address)
	if !ok {
		return "", ValidationError{Field: "address"}
	}
	to, ok := validate.Email(form.Email)
	if !ok {
		return "", ValidationError{Field: "email"}
	}

	// Validate the cart before any write or network call.
	cartLines := s.Cart.Lines(sessionID)
	if len(cartLines) == 0 {
		return "", ErrEmptyCart
	}
	var lines []domain.OrderLine
	var subtotal int64
	for _, ln := range cartLines {
		p, found := s.Cart.Catalog.Get(ln.PlantID)
		if !found {
			// Plant pulled from the catalog after it was carted.
			continue
		}
		lines = append(lines, domain.OrderLine{
			PlantID:     p.ID,
			Name:        p.Name,
			Qty:         ln.Qty,
			PriceAtTime: p.Price,
		})
		subtotal += p.Price * int64(ln.Qty)
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	quote := s.Pricing.Quote(subtotal)
	orderID := newOrderID()

	err := s.Orders.Create(repos.NewOrder{
		ID:            orderID,
		SessionID:     sessionID,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: to,
		Address:       addr,
		Notes:         strings.TrimSpace(form.Notes),
		Subtotal:      quote.Subtotal,
		Shipping:      quote.Shipping,
		Tax:           quote.Tax,
		Total:         quote.Total,
	}, lines)
	if err != nil {
		return "", err
	}

	if _, err := s.Cart.Clear(sessionID); err != nil {
		// Order exists; a stale cart is recoverable, so only log.
		applog.Error(nil, "order.cart.clear.fail", err, map[string]any{"order_id": orderID})
	}

	s.sendMail(email.Message{
		To:              to,
		OrderID:         orderID,
		Kind:            email.KindConfirmation,
		CustomerName:    name,
		Items:           lines,
		Total:           quote.Total,
		ShippingAddress: addr,
	})

	if s.Hub != nil {
		s.Hub.Publish(notify.Event{Type: "insert", Order: domain.OrderSummary{
			ID:            orderID,
			CustomerName:  name,
			CustomerEmail: to,
			Total:         quote.Total,
			Status:        domain.StatusPending,
			CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		}})
	}

	return orderID, nil
}

// AdvanceStatus moves an order forward through pending -> processing ->
// shipped -> delivered. Shipped and delivered transitions notify the
// customer by email, best effort.
func (s *OrderService) AdvanceStatus(orderID string, next domain.OrderStatus) (domain.OrderSummary, error) {
	if !next.Valid() {
		return domain.OrderSummary{}, ErrBadTransition
	}
	row, _, err := s.Orders.Get(orderID)
	if err == sql.ErrNoRows {
		return domain.OrderSummary{}, ErrOrderNotFound
	}
	if err != nil {
		return domain.OrderSummary{}, err
	}
	if !row.Status.CanAdvanceTo(next) {
		return domain.OrderSummary{}, ErrBadTransition
	}
	ok, err := s.Orders.UpdateStatus(orderID, row.Status, next)
	if err != nil {
		return domain.OrderSummary{}, err
	}
	if !ok {
		// Raced with another update; the store stays last-write-wins.
		return domain.OrderSummary{}, ErrBadTransition
	}

	if next == domain.StatusShipped || next == domain.StatusDelivered {
		kind := email.KindShipped
		if next == domain.StatusDelivered {
			kind = email.KindDelivered
		}
		s.sendMail(email.Message{
			To:           row.CustomerEmail,
			OrderID:      orderID,
			Kind:         kind,
			CustomerName: row.CustomerName,
		})
	}

	summary := domain.OrderSummary{
		ID:            orderID,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		Total:         row.Total,
		Status:        next,
		CreatedAt:     row.CreatedAt,
	}
	if s.Hub != nil {
		s.Hub.Publish(notify.Event{Type: "update", Order: summary})
	}
	return summary, nil
}

// sendMail dispatches asynchronously; failures are logged and swallowed,
// never surfaced and never rolled back into the order.
func (s *OrderService) sendMail(m email.Message) {
	timeout := s.MailTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.Mailer.SendOrderEmail(ctx, m); err != nil {
			applog.Error(nil, "email.send.fail", err, map[string]any{
				"order_id": m.OrderID,
				"kind":     string(m.Kind),
			})
		}
	}()
}

func newOrderID() string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]))
}
