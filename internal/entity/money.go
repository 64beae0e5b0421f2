package entity

import "github.com/shopspring/decimal"

func init() {
	// Money travels as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money builds an amount from whole currency units.
func Money(units int64) decimal.Decimal {
	return decimal.NewFromInt(units)
}
