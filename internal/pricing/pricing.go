// Package pricing implements the cost-plus quote used by the sales
// calculator: cost plus a profit margin, with VAT added last.
package pricing

const (
	DefaultMarginPct = 10
	DefaultVATPct    = 7
)

type Quote struct {
	Cost      float64
	MarginPct float64
	VATPct    float64
}

type Breakdown struct {
	Cost     float64
	Profit   float64
	Subtotal float64 // cost + profit, before VAT
	VAT      float64
	Total    float64
}

func (q Quote) Calculate() Breakdown {
	profit := q.Cost * q.MarginPct / 100
	subtotal := q.Cost + profit
	vat := subtotal * q.VATPct / 100

	return Breakdown{
		Cost:     q.Cost,
		Profit:   profit,
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal + vat,
	}
}
