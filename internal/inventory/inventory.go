package inventory

import "github.com/google/uuid"

// Product is a stocked item.
type Product struct {
	ID                string  `json:"id"`
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Cost              float64 `json:"cost"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit"`
	MinStockThreshold float64 `json:"minStockThreshold"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinStockThreshold
}

// NewID generates a random identifier for a product.
func NewID() string {
	return uuid.NewString()
}

// Patch is a partial product update; nil fields are left unchanged.
type Patch struct {
	Code              *string  `json:"code,omitempty"`
	Name              *string  `json:"name,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
	Quantity          *float64 `json:"quantity,omitempty"`
	Unit              *string  `json:"unit,omitempty"`
	MinStockThreshold *float64 `json:"minStockThreshold,omitempty"`
}

// Apply merges the patch into p.
func (patch Patch) Apply(p *Product) {
	if patch.Code != nil {
		p.Code = *patch.Code
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}

	if patch.Cost != nil {
		p.Cost = *patch.Cost
	}

	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}

	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}

	if patch.MinStockThreshold != nil {
		p.MinStockThreshold = *patch.MinStockThreshold
	}
}

// ClampQuantity applies a quick-adjust delta, never going below zero.
func ClampQuantity(current, delta float64) float64 {
	q := current + delta
	if q < 0 {
		return 0
	}

	return q
}
