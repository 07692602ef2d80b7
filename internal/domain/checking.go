package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckingLimits holds the debit policy of a checking account
type CheckingLimits struct {
	OverdraftLimit decimal.Decimal // Headroom below zero
	MaxWithdrawals int             // Successful withdrawals allowed; never reset
}

// DefaultCheckingLimits returns a 500 overdraft and 3 withdrawals
func DefaultCheckingLimits() CheckingLimits {
	return CheckingLimits{
		OverdraftLimit: decimal.NewFromInt(500),
		MaxWithdrawals: 3,
	}
}

// Validate ensures the limits are not negative
func (l CheckingLimits) Validate() error {
	if l.OverdraftLimit.LessThan(decimal.Zero) {
		return errors.New("overdraft limit cannot be negative")
	}
	if l.MaxWithdrawals < 0 {
		return errors.New("max withdrawals cannot be negative")
	}
	return nil
}

// CheckingAccount is an account that may overdraw up to a limit, with a capped
// number of withdrawals
type CheckingAccount struct {
	*accountState
	limits          CheckingLimits
	withdrawalsUsed int
}

// OpenCheckingAccount creates a checking account with zero balance and
// registers it with its client
func OpenCheckingAccount(client *Client, number int64, limits CheckingLimits, opts ...AccountOption) (*CheckingAccount, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	s, err := newAccountState(client, number, opts)
	if err != nil {
		return nil, err
	}

	account := &CheckingAccount{accountState: s, limits: limits}
	client.AddAccount(account)
	return account, nil
}

func (a *CheckingAccount) Kind() AccountKind { return AccountKindChecking }

// Limits returns the debit policy of the account
func (a *CheckingAccount) Limits() CheckingLimits {
	return a.limits
}

// WithdrawalsUsed returns the number of successful withdrawals so far
func (a *CheckingAccount) WithdrawalsUsed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawalsUsed
}

// WithdrawalsRemaining returns how many withdrawals are still allowed
func (a *CheckingAccount) WithdrawalsRemaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limits.MaxWithdrawals - a.withdrawalsUsed
}

// debit replaces the base policy. Logic:
//  1. available = balance + overdraft limit
//  2. Reject non-positive amounts and amounts above available
//  3. Reject once the withdrawal cap is reached
//  4. Count the withdrawal and decrease the balance
//
// Callers hold the account lock.
func (a *CheckingAccount) debit(amount decimal.Decimal) Outcome {
	available := a.balance.Add(a.limits.OverdraftLimit)

	if amount.LessThanOrEqual(decimal.Zero) {
		return OutcomeInvalidAmount
	}
	if amount.GreaterThan(available) {
		return OutcomeInsufficientFunds
	}

	if a.withdrawalsUsed >= a.limits.MaxWithdrawals {
		return OutcomeWithdrawalLimitExceeded
	}

	a.withdrawalsUsed++
	a.balance = a.balance.Sub(amount)
	return OutcomeSuccess
}

// Describe renders the branch, account number and holder name, one per line
func (a *CheckingAccount) Describe() string {
	return fmt.Sprintf("Branch:  %s\nAccount: %d\nHolder:  %s", a.branch, a.number, a.client.DisplayName())
}

func (a *CheckingAccount) String() string {
	return a.Describe()
}
