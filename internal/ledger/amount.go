package ledger

import "github.com/shopspring/decimal"

// Amounts and balances are stored as NUMERIC(38, 18).
const maxAmountScale = 18

// maxAmount is the exclusive upper bound for amounts and balances.
var maxAmount = decimal.New(1, 38-maxAmountScale)

// ValidateAmount accepts positive amounts the store can hold without rounding.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.Exponent() < -maxAmountScale && !amount.Equal(amount.Truncate(maxAmountScale)) {
		return ErrInvalidAmount
	}
	if !amount.LessThan(maxAmount) {
		return ErrInvalidAmount
	}
	return nil
}
