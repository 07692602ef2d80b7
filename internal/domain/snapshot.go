package domain

import "github.com/shopspring/decimal"

// AccountSnapshot is a view of an account read under a single hold of its lock
type AccountSnapshot struct {
	Number  int64
	Branch  string
	Kind    AccountKind
	Balance decimal.Decimal
	Records []TransactionRecord

	// Checking accounts only
	Limits               CheckingLimits
	WithdrawalsUsed      int
	WithdrawalsRemaining int
}

// Snapshot reads the balance, history and withdrawal usage of an account
// together, so no transaction lands between them.
func Snapshot(account Account) AccountSnapshot {
	s := account.state()
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := AccountSnapshot{
		Number:  s.number,
		Branch:  s.branch,
		Kind:    account.Kind(),
		Balance: s.balance,
		Records: s.history.Records(),
	}

	if checking, ok := account.(*CheckingAccount); ok {
		snap.Limits = checking.limits
		snap.WithdrawalsUsed = checking.withdrawalsUsed
		snap.WithdrawalsRemaining = checking.limits.MaxWithdrawals - checking.withdrawalsUsed
	}

	return snap
}
