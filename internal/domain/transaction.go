package domain

import "github.com/shopspring/decimal"

// Transaction is an operation over an account. The set of variants is closed:
// Deposit and Withdrawal.
type Transaction interface {
	Kind() TransactionKind
	Amount() decimal.Decimal
	// Apply attempts the transaction against the account and records it in the
	// account history when it succeeds
	Apply(account Account) Outcome

	// record runs the primitive and the history append; callers hold the
	// account lock
	record(account Account) Outcome
}

// Deposit credits an account
type Deposit struct {
	amount decimal.Decimal
}

// NewDeposit creates a deposit of the given amount
func NewDeposit(amount decimal.Decimal) Deposit {
	return Deposit{amount: amount}
}

func (d Deposit) Kind() TransactionKind   { return TransactionKindDeposit }
func (d Deposit) Amount() decimal.Decimal { return d.amount }

// Apply credits the account and appends a DEPOSIT record on success
func (d Deposit) Apply(account Account) Outcome {
	return settle(account, d)
}

func (d Deposit) record(account Account) Outcome {
	return commit(account, TransactionKindDeposit, d.amount, account.credit)
}

// Withdrawal debits an account under the account's debit policy
type Withdrawal struct {
	amount decimal.Decimal
}

// NewWithdrawal creates a withdrawal of the given amount
func NewWithdrawal(amount decimal.Decimal) Withdrawal {
	return Withdrawal{amount: amount}
}

func (w Withdrawal) Kind() TransactionKind   { return TransactionKindWithdrawal }
func (w Withdrawal) Amount() decimal.Decimal { return w.amount }

// Apply debits the account and appends a WITHDRAWAL record on success
func (w Withdrawal) Apply(account Account) Outcome {
	return settle(account, w)
}

func (w Withdrawal) record(account Account) Outcome {
	return commit(account, TransactionKindWithdrawal, w.amount, account.debit)
}

// settle runs the transaction under the account lock, so the balance change
// and its record are seen together or not at all.
func settle(account Account, tx Transaction) Outcome {
	s := account.state()
	s.mu.Lock()
	defer s.mu.Unlock()
	return tx.record(account)
}

// commit appends a record iff the primitive succeeded
func commit(account Account, kind TransactionKind, amount decimal.Decimal, primitive func(decimal.Decimal) Outcome) Outcome {
	outcome := primitive(amount)
	if outcome.OK() {
		account.state().history.append(kind, amount)
	}
	return outcome
}
