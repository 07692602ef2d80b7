package teller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
)

// TransactionInput represents the input for a deposit or a withdrawal
type TransactionInput struct {
	ClientID      uuid.UUID
	AccountNumber int64
	Amount        decimal.Decimal
}

// Receipt describes an applied transaction
type Receipt struct {
	AccountNumber int64
	Kind          domain.TransactionKind
	Amount        decimal.Decimal
	Balance       decimal.Decimal // Balance right after the transaction
}

// TellerService submits deposits and withdrawals on behalf of clients
type TellerService struct {
	ClientRepo  domain.ClientRepository
	AccountRepo domain.AccountRepository

	log    *slog.Logger
	tracer trace.Tracer
}

// NewTellerService creates a new TellerService instance
func NewTellerService(log *slog.Logger, clientRepo domain.ClientRepository, accountRepo domain.AccountRepository) *TellerService {
	return &TellerService{
		ClientRepo:  clientRepo,
		AccountRepo: accountRepo,
		log:         log,
		tracer:      otel.Tracer("github.com/Eduardo-JSF/desafio-03/internal/usecase/teller"),
	}
}

// Deposit credits one of the client's accounts
func (s *TellerService) Deposit(ctx context.Context, input TransactionInput) (*Receipt, error) {
	return s.submit(ctx, input, domain.NewDeposit(input.Amount))
}

// Withdraw debits one of the client's accounts under the account's policy
func (s *TellerService) Withdraw(ctx context.Context, input TransactionInput) (*Receipt, error) {
	return s.submit(ctx, input, domain.NewWithdrawal(input.Amount))
}

// submit runs a transaction for a client
// Logic:
//  1. Fetch the client and the account
//  2. Refuse accounts the client does not own
//  3. Settle through the client and map a refused outcome to its error
func (s *TellerService) submit(ctx context.Context, input TransactionInput, tx domain.Transaction) (*Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "teller."+string(tx.Kind()), trace.WithAttributes(
		attribute.Int64("account.number", input.AccountNumber),
		attribute.String("amount", tx.Amount().String()),
	))
	defer span.End()

	// 1. Fetch the client and the account
	client, err := s.ClientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	account, err := s.AccountRepo.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	// 2. Ownership is enforced here; Client.Submit itself is owner-agnostic
	if !client.Owns(account) {
		s.log.WarnContext(ctx, "transaction on foreign account",
			"client_id", client.ID,
			"account_number", input.AccountNumber,
		)
		return nil, fmt.Errorf("account %d: %w", input.AccountNumber, domain.ErrAccountNotOwned)
	}

	// 3. Settle; the balance is read under the same account lock
	outcome, balance := client.Settle(account, tx)
	span.SetAttributes(attribute.String("outcome", outcome.String()))

	if !outcome.OK() {
		span.SetStatus(codes.Error, outcome.String())
		s.log.InfoContext(ctx, "transaction refused",
			"kind", tx.Kind(),
			"account_number", input.AccountNumber,
			"amount", tx.Amount(),
			"outcome", outcome,
		)
		return nil, fmt.Errorf("%s of %s refused: %w", tx.Kind(), tx.Amount(), outcome.Err())
	}

	s.log.InfoContext(ctx, "transaction applied",
		"kind", tx.Kind(),
		"account_number", input.AccountNumber,
		"amount", tx.Amount(),
		"balance", balance,
	)

	return &Receipt{
		AccountNumber: input.AccountNumber,
		Kind:          tx.Kind(),
		Amount:        tx.Amount(),
		Balance:       balance,
	}, nil
}
