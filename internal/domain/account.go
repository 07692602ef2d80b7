package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBranch is the branch assigned when none is given
const DefaultBranch = "0001"

// AccountKind represents the debit policy of an account
type AccountKind string

const (
	AccountKindBasic    AccountKind = "BASIC"
	AccountKindChecking AccountKind = "CHECKING"
)

// Account is a balance owned by one client. The balance changes only through
// the credit and debit primitives, which are reachable from a Transaction.
type Account interface {
	Kind() AccountKind
	Number() int64
	Branch() string
	Balance() decimal.Decimal
	Client() *Client
	History() *History

	credit(amount decimal.Decimal) Outcome
	debit(amount decimal.Decimal) Outcome
	state() *accountState
}

// accountState is the bookkeeping shared by every account variant
type accountState struct {
	mu      sync.Mutex
	number  int64
	branch  string
	client  *Client
	balance decimal.Decimal
	history *History
}

func (s *accountState) Number() int64     { return s.number }
func (s *accountState) Branch() string    { return s.branch }
func (s *accountState) Client() *Client   { return s.client }
func (s *accountState) History() *History { return s.history }

// Balance returns the current balance
func (s *accountState) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

func (s *accountState) state() *accountState { return s }

// credit is the deposit primitive shared by all variants. Callers hold s.mu.
func (s *accountState) credit(amount decimal.Decimal) Outcome {
	if amount.LessThanOrEqual(decimal.Zero) {
		return OutcomeInvalidAmount
	}
	s.balance = s.balance.Add(amount)
	return OutcomeSuccess
}

// AccountOption configures an account at opening time
type AccountOption func(*accountOptions)

type accountOptions struct {
	branch string
	clock  func() time.Time
}

// WithBranch opens the account on the given branch instead of DefaultBranch
func WithBranch(branch string) AccountOption {
	return func(o *accountOptions) {
		if branch != "" {
			o.branch = branch
		}
	}
}

// WithClock sets the clock used to stamp history records
func WithClock(now func() time.Time) AccountOption {
	return func(o *accountOptions) {
		o.clock = now
	}
}

func newAccountState(client *Client, number int64, opts []AccountOption) (*accountState, error) {
	if client == nil {
		return nil, errors.New("account must belong to a client")
	}

	o := accountOptions{branch: DefaultBranch, clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &accountState{
		number:  number,
		branch:  o.branch,
		client:  client,
		balance: decimal.Zero,
		history: newHistory(o.clock),
	}, nil
}

// BasicAccount is an account that can never go below zero
type BasicAccount struct {
	*accountState
}

// OpenAccount creates a basic account with zero balance and registers it with
// its client
func OpenAccount(client *Client, number int64, opts ...AccountOption) (*BasicAccount, error) {
	s, err := newAccountState(client, number, opts)
	if err != nil {
		return nil, err
	}

	account := &BasicAccount{accountState: s}
	client.AddAccount(account)
	return account, nil
}

func (a *BasicAccount) Kind() AccountKind { return AccountKindBasic }

// debit succeeds iff 0 < amount <= balance. Callers hold the account lock.
func (a *BasicAccount) debit(amount decimal.Decimal) Outcome {
	if amount.LessThanOrEqual(decimal.Zero) {
		return OutcomeInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return OutcomeInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return OutcomeSuccess
}
