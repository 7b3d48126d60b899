package domain

import "github.com/shopspring/decimal"

// FormatPrice renders an amount as dollars with two decimals, e.g. "$29.99".
func FormatPrice(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

// MustPrice parses a literal currency amount. It panics on malformed input
// and is meant for seed data.
func MustPrice(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
