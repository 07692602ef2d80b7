package domain

import "errors"

// Set of errors reported by failed balance mutations.
var (
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrWithdrawalLimitExceeded = errors.New("withdrawal limit exceeded")
)

// Outcome represents the result of applying a balance mutation to an account
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidAmount
	OutcomeInsufficientFunds
	OutcomeWithdrawalLimitExceeded
)

// OK reports whether the mutation was applied
func (o Outcome) OK() bool {
	return o == OutcomeSuccess
}

// Err returns nil for a successful outcome and the matching sentinel error otherwise
func (o Outcome) Err() error {
	switch o {
	case OutcomeSuccess:
		return nil
	case OutcomeInvalidAmount:
		return ErrInvalidAmount
	case OutcomeInsufficientFunds:
		return ErrInsufficientFunds
	case OutcomeWithdrawalLimitExceeded:
		return ErrWithdrawalLimitExceeded
	default:
		return errors.New("unknown outcome")
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeInvalidAmount:
		return "INVALID_AMOUNT"
	case OutcomeInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case OutcomeWithdrawalLimitExceeded:
		return "WITHDRAWAL_LIMIT_EXCEEDED"
	default:
		return "UNKNOWN"
	}
}
