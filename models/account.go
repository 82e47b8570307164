package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gobank/types"
)

// Account is a ledger entity holding a balance, an append-only operation
// history and an active flag. The Type field discriminates the two variants
// (checking/savings) and is persisted alongside the data.
type Account struct {
	Number  int64             `json:"number"`
	Balance decimal.Decimal   `json:"balance"`
	History []string          `json:"history"`
	Active  bool              `json:"active"`
	Type    types.AccountType `json:"type"`
}

func NewAccount(number int64, accountType types.AccountType) *Account {
	return &Account{
		Number:  number,
		Balance: decimal.Zero,
		History: []string{},
		Active:  true,
		Type:    accountType,
	}
}

// TransferLimit is the maximum single-transfer amount for this variant.
func (a *Account) TransferLimit() decimal.Decimal {
	if a.Type == types.AccountTypeSavings {
		return params.SavingsTransferLimit
	}
	return params.CheckingTransferLimit
}

// TransferTo moves amount from a to destination. Every check runs before any
// mutation, so a failed transfer leaves both accounts untouched. On success
// both balances move and each side records exactly one history entry with the
// same timestamp.
func (a *Account) TransferTo(destination *Account, amount decimal.Decimal) error {
	if destination.Number == a.Number {
		return ErrSameAccount
	}
	if !a.Active {
		return AccountInactiveError{Number: a.Number}
	}
	if !destination.Active {
		return AccountInactiveError{Number: destination.Number}
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	if amount.GreaterThan(a.TransferLimit()) {
		return LimitExceededError{Limit: a.TransferLimit()}
	}

	a.Balance = a.Balance.Sub(amount)
	destination.Balance = destination.Balance.Add(amount)

	now := time.Now()
	a.record(now, fmt.Sprintf("Transferred R$ %s to account %d", amount.StringFixed(2), destination.Number))
	destination.record(now, fmt.Sprintf("Received R$ %s from account %d", amount.StringFixed(2), a.Number))

	return nil
}

// MonthlyAdjust applies the variant rule: checking pays the fixed maintenance
// fee (the balance may go negative), savings earns balance * monthly rate.
// Inactive accounts are rejected uniformly.
func (a *Account) MonthlyAdjust() error {
	if !a.Active {
		return AccountInactiveError{Number: a.Number}
	}

	switch a.Type {
	case types.AccountTypeChecking:
		fee := params.CheckingMaintenanceFee
		a.Balance = a.Balance.Sub(fee)
		a.record(time.Now(), fmt.Sprintf("Monthly adjustment: maintenance fee of R$ %s charged", fee.StringFixed(2)))
	case types.AccountTypeSavings:
		interest := a.Balance.Mul(params.SavingsMonthlyRate)
		a.Balance = a.Balance.Add(interest)
		a.record(time.Now(), fmt.Sprintf("Monthly adjustment: interest of R$ %s applied", interest.StringFixed(2)))
	default:
		return ErrUnknownType
	}

	return nil
}

// Close deactivates the account. Closing is one-way; closing twice is an
// explicit error rather than a silent re-append.
func (a *Account) Close() error {
	if !a.Active {
		return ErrAlreadyClosed
	}

	a.Active = false
	a.record(time.Now(), "Account closed")

	return nil
}

// HistoryCopy returns the operation history as a defensive copy, never a live
// view of the underlying slice.
func (a *Account) HistoryCopy() []string {
	out := make([]string, len(a.History))
	copy(out, a.History)
	return out
}

func (a *Account) record(at time.Time, description string) {
	a.History = append(a.History, at.Format("2006-01-02 15:04:05")+" - "+description)
}
