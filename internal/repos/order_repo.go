package repos

import (
	"vrukshavalli/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderRow is the full order header as read back for detail views.
type OrderRow struct {
	ID            string             `db:"id"`
	SessionID     string             `db:"session_id"`
	CustomerName  string             `db:"customer_name"`
	CustomerPhone string             `db:"customer_phone"`
	CustomerEmail string             `db:"customer_email"`
	Address       string             `db:"customer_address"`
	Notes         string             `db:"notes"`
	PaymentMethod string             `db:"payment_method"`
	Subtotal      int64              `db:"subtotal"`
	Shipping      int64              `db:"shipping"`
	Tax           int64              `db:"tax"`
	Total         int64              `db:"total"`
	Status        domain.OrderStatus `db:"status"`
	CreatedAt     string             `db:"created_at"`
}

// NewOrder carries everything Create persists.
type NewOrder struct {
	ID            string
	SessionID     string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Address       string
	Notes         string
	Subtotal      int64
	Shipping      int64
	Tax           int64
	Total         int64
}

// Create inserts the order header and every line in one transaction, so a
// failure mid-way never leaves an order without its items.
func (r *OrderRepo) Create(o NewOrder, lines []domain.OrderLine) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, session_id, customer_name, customer_phone, customer_email, customer_address,
	     notes, payment_method, subtotal, shipping, tax, total, status, created_at)
	  VALUES
	    (?, ?, ?, ?, ?, ?, ?, 'cod', ?, ?, ?, ?, 'pending', CURRENT_TIMESTAMP)
	`, o.ID, o.SessionID, o.CustomerName, o.CustomerPhone, o.CustomerEmail, o.Address,
		o.Notes, o.Subtotal, o.Shipping, o.Tax, o.Total); err != nil {
		return err
	}

	for i, ln := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, line_no, plant_id, name, qty, price_at_time)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, o.ID, i, ln.PlantID, ln.Name, ln.Qty, ln.PriceAtTime); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []domain.OrderLine, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, COALESCE(session_id,'') AS session_id, customer_name, customer_phone,
		       customer_email, customer_address, COALESCE(notes,'') AS notes,
		       payment_method, subtotal, shipping, tax, total, status, created_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	// Lines come back in the order the customer carted them.
	var items []domain.OrderLine
	if err := r.db.Select(&items, `
		SELECT plant_id, name, qty, price_at_time
		FROM order_items
		WHERE order_id = ?
		ORDER BY line_no
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC, id DESC
		LIMIT ?
	`, limit)
	return out, err
}

// ListByEmail returns a customer's orders, newest first.
func (r *OrderRepo) ListByEmail(email string) ([]domain.OrderSummary, error) {
	var out []domain.OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders
		WHERE LOWER(customer_email) = LOWER(?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, email)
	return out, err
}

// ListBySession returns orders tied to a session id (anonymous checkouts).
func (r *OrderRepo) ListBySession(sessionID string) ([]domain.OrderSummary, error) {
	var out []domain.OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`, sessionID)
	return out, err
}

// UpdateStatus moves an order from one status to another. The WHERE guard
// makes the forward-only check atomic; zero rows means the order was
// missing or no longer in the expected status.
func (r *OrderRepo) UpdateStatus(id string, from, to domain.OrderStatus) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
