// Package portfolio values a set of holdings against current asset prices.
package portfolio

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"cryptodash/internal/prices"
)

// Holding is an amount of one asset.
type Holding struct {
	ID     string
	Amount decimal.Decimal
}

// Holdings is an ordered set of holdings.
type Holdings []Holding

// DefaultHoldings is the portfolio used when none is configured.
func DefaultHoldings() Holdings {
	return Holdings{
		{ID: "bitcoin", Amount: decimal.RequireFromString("0.5")},
		{ID: "ethereum", Amount: decimal.RequireFromString("4.2")},
		{ID: "tether", Amount: decimal.NewFromInt(1000)},
	}
}

// IDs returns the asset ids in holding order.
func (h Holdings) IDs() []string {
	ids := make([]string, len(h))
	for i, x := range h {
		ids[i] = x.ID
	}
	return ids
}

// Amount returns the amount held of id, zero if none.
func (h Holdings) Amount(id string) decimal.Decimal {
	for _, x := range h {
		if x.ID == id {
			return x.Amount
		}
	}
	return decimal.Zero
}

// Row is the valuation of one asset.
type Row struct {
	ID     string
	Name   string
	Amount decimal.Decimal
	Price  decimal.Decimal
	Value  decimal.Decimal
}

// Valuation is a priced portfolio.
type Valuation struct {
	Rows  []Row
	Total decimal.Decimal
}

// Value prices holdings using assets. Rows follow the order of assets; an
// asset that is not held values at zero, and an asset with no price values
// at zero.
func Value(h Holdings, assets []prices.Asset) Valuation {
	v := Valuation{Rows: make([]Row, 0, len(assets)), Total: decimal.Zero}
	for _, a := range assets {
		amount := h.Amount(a.ID)
		value := amount.Mul(a.PriceUSD)
		name := a.Name
		if name == "" {
			name = a.ID
		}
		v.Rows = append(v.Rows, Row{ID: a.ID, Name: name, Amount: amount, Price: a.PriceUSD, Value: value})
		v.Total = v.Total.Add(value)
	}
	return v
}

// FormatAmount renders an amount with four fraction digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(4)
}

// FormatUSD renders d as US dollars with grouping and at most two fraction
// digits, dropping trailing zeros ("$1,234.5", "$1,000").
func FormatUSD(d decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	cents := d.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction)).IntPart()
	s := money.New(cents, money.USD).Display()
	if i := strings.LastIndex(s, cur.Decimal); i >= 0 && cur.Fraction > 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, cur.Decimal)
	}
	return s
}
