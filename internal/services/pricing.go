package services

import "math"

// Calculator applies the storefront pricing rules. All amounts are whole
// rupees; tax is rounded exactly once, here, at the point the quote is
// persisted or displayed.
type Calculator struct {
	ShipThreshold int64   // shipping is waived when subtotal exceeds this
	ShipFee       int64   // flat fee otherwise
	TaxRate       float64 // flat surcharge on subtotal
}

func DefaultCalculator() Calculator {
	return Calculator{ShipThreshold: 1000, ShipFee: 100, TaxRate: 0.18}
}

type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Quote prices a cart subtotal. The threshold is exclusive: a subtotal of
// exactly ShipThreshold still pays the fee.
func (c Calculator) Quote(subtotal int64) Quote {
	shipping := c.ShipFee
	if subtotal > c.ShipThreshold {
		shipping = 0
	}
	tax := int64(math.Round(float64(subtotal) * c.TaxRate))
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
