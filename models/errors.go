package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("transfer amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds for this transfer")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
	ErrAlreadyClosed     = errors.New("account is already closed")
	ErrUnknownType       = errors.New("unknown account type")
)

// AccountInactiveError carries the number of the offending account so the
// controller can tell the caller which side of a transfer was inactive.
type AccountInactiveError struct {
	Number int64
}

func (e AccountInactiveError) Error() string {
	return fmt.Sprintf("account %d is inactive", e.Number)
}

type LimitExceededError struct {
	Limit decimal.Decimal
}

func (e LimitExceededError) Error() string {
	return fmt.Sprintf("transfer amount exceeds the account limit of R$ %s", e.Limit.StringFixed(2))
}
