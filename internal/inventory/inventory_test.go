package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittipatv/shopdesk/internal/inventory"
)

func TestProduct_LowStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		minStock float64
		want     bool
	}{
		{name: "above threshold", quantity: 50, minStock: 20, want: false},
		{name: "at threshold", quantity: 20, minStock: 20, want: true},
		{name: "below threshold", quantity: 5, minStock: 20, want: true},
		{name: "zero stock no threshold", quantity: 0, minStock: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := inventory.Product{Quantity: tt.quantity, MinStockThreshold: tt.minStock}
			assert.Equal(t, tt.want, p.LowStock())
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	base := inventory.Product{
		ID:                "p1",
		Code:              "P001",
		Name:              "สาย LAN CAT6",
		Cost:              100,
		Quantity:          50,
		Unit:              "เมตร",
		MinStockThreshold: 20,
	}

	t.Run("nil fields leave the product unchanged", func(t *testing.T) {
		p := base
		inventory.Patch{}.Apply(&p)
		assert.Equal(t, base, p)
	})

	t.Run("set fields overwrite", func(t *testing.T) {
		p := base

		inventory.Patch{
			Name:     new("สาย LAN CAT6A"),
			Cost:     new(120.0),
			Quantity: new(0.0),
		}.Apply(&p)

		assert.Equal(t, "สาย LAN CAT6A", p.Name)
		assert.Equal(t, 120.0, p.Cost)
		assert.Equal(t, 0.0, p.Quantity, "explicit zero is a real value, not a missing field")
		assert.Equal(t, "P001", p.Code)
		assert.Equal(t, "เมตร", p.Unit)
	})
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 8.0, inventory.ClampQuantity(5, 3))
	assert.Equal(t, 2.0, inventory.ClampQuantity(5, -3))
	assert.Equal(t, 0.0, inventory.ClampQuantity(5, -5))
	assert.Equal(t, 0.0, inventory.ClampQuantity(5, -10))
	assert.Equal(t, 0.0, inventory.ClampQuantity(0, -1))
}
