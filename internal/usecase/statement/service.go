package statement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
)

// StatementInput represents the input for building a statement
type StatementInput struct {
	ClientID      uuid.UUID
	AccountNumber int64
}

// Statement is a point-in-time view of an account and its history
type Statement struct {
	AccountNumber    int64
	Branch           string
	Kind             domain.AccountKind
	Holder           string
	Balance          decimal.Decimal
	Records          []domain.TransactionRecord
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal

	// Checking accounts only
	OverdraftLimit       decimal.Decimal
	WithdrawalsUsed      int
	WithdrawalsRemaining int
	Description          string
}

// StatementService builds account statements
type StatementService struct {
	ClientRepo  domain.ClientRepository
	AccountRepo domain.AccountRepository

	tracer trace.Tracer
}

// NewStatementService creates a new StatementService instance
func NewStatementService(clientRepo domain.ClientRepository, accountRepo domain.AccountRepository) *StatementService {
	return &StatementService{
		ClientRepo:  clientRepo,
		AccountRepo: accountRepo,
		tracer:      otel.Tracer("github.com/Eduardo-JSF/desafio-03/internal/usecase/statement"),
	}
}

// GetStatement returns the statement of one of the client's accounts
// Logic:
//   - Balance, records and withdrawal usage come from one account snapshot
//   - Totals: sum of DEPOSIT and WITHDRAWAL record amounts
//   - Checking accounts add their limits, withdrawal usage and description
func (s *StatementService) GetStatement(ctx context.Context, input StatementInput) (*Statement, error) {
	ctx, span := s.tracer.Start(ctx, "statement.GetStatement", trace.WithAttributes(
		attribute.Int64("account.number", input.AccountNumber),
	))
	defer span.End()

	client, err := s.ClientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	account, err := s.AccountRepo.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	if !client.Owns(account) {
		return nil, fmt.Errorf("account %d: %w", input.AccountNumber, domain.ErrAccountNotOwned)
	}

	snap := domain.Snapshot(account)

	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for _, record := range snap.Records {
		switch record.Kind {
		case domain.TransactionKindDeposit:
			deposits = deposits.Add(record.Amount)
		case domain.TransactionKindWithdrawal:
			withdrawals = withdrawals.Add(record.Amount)
		}
	}

	st := &Statement{
		AccountNumber:    snap.Number,
		Branch:           snap.Branch,
		Kind:             snap.Kind,
		Holder:           client.DisplayName(),
		Balance:          snap.Balance,
		Records:          snap.Records,
		TotalDeposits:    deposits,
		TotalWithdrawals: withdrawals,
	}

	if checking, ok := account.(*domain.CheckingAccount); ok {
		st.OverdraftLimit = snap.Limits.OverdraftLimit
		st.WithdrawalsUsed = snap.WithdrawalsUsed
		st.WithdrawalsRemaining = snap.WithdrawalsRemaining
		st.Description = checking.Describe()
	}

	return st, nil
}
