package handler

import "github.com/shopspring/decimal"

// toDecimal converts a float64 amount from a request body to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
