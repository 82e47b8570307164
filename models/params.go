package models

import "github.com/shopspring/decimal"

// Params are the configuration-level account rules. Limits and rates are fixed
// per account variant, never per instance.
type Params struct {
	CheckingTransferLimit  decimal.Decimal
	SavingsTransferLimit   decimal.Decimal
	CheckingMaintenanceFee decimal.Decimal
	SavingsMonthlyRate     decimal.Decimal
}

func DefaultParams() Params {
	return Params{
		CheckingTransferLimit:  decimal.NewFromInt(5000),
		SavingsTransferLimit:   decimal.NewFromInt(1000),
		CheckingMaintenanceFee: decimal.NewFromInt(15),
		SavingsMonthlyRate:     decimal.RequireFromString("0.005"),
	}
}

var params = DefaultParams()

func Configure(p Params) {
	params = p
}
