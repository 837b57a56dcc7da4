package domain

// Category is the plant taxonomy used across the storefront.
type Category string

const (
	CategoryIndoor  Category = "indoor"
	CategoryOutdoor Category = "outdoor"
	CategoryExotic  Category = "exotic"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryIndoor, CategoryOutdoor, CategoryExotic:
		return true
	}
	return false
}

// Plant is a catalog entry. Prices are whole rupees (minor-unit free).
// OriginalPrice, when non-zero, is the pre-discount price and must exceed Price.
type Plant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	CareTips      []string `json:"careTips"`
	Features      []string `json:"features"`
	InStock       bool     `json:"inStock"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
}

// CartLine pairs a plant with a quantity. A cart holds at most one line
// per plant id; lines keep first-added order.
type CartLine struct {
	PlantID string `json:"plantId"`
	Qty     int    `json:"qty"`
}

// OrderStatus progresses forward only: pending -> processing -> shipped -> delivered.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether next is a strictly forward transition.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	a, okA := statusRank[s]
	b, okB := statusRank[next]
	return okA && okB && b > a
}

// OrderLine is a cart line frozen at checkout. PriceAtTime is the unit
// price captured when the order was placed, decoupled from later catalog edits.
type OrderLine struct {
	PlantID     string `json:"plantId" db:"plant_id"`
	Name        string `json:"name" db:"name"`
	Qty         int    `json:"qty" db:"qty"`
	PriceAtTime int64  `json:"priceAtTime" db:"price_at_time"`
}

// OrderSummary is the compact order shape pushed over the realtime feed
// and listed on dashboards.
type OrderSummary struct {
	ID            string      `json:"id" db:"id"`
	CustomerName  string      `json:"customerName" db:"customer_name"`
	CustomerEmail string      `json:"customerEmail" db:"customer_email"`
	Total         int64       `json:"total" db:"total"`
	Status        OrderStatus `json:"status" db:"status"`
	CreatedAt     string      `json:"createdAt" db:"created_at"`
}
