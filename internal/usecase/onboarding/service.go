package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
)

// NumberGenerator hands out unique account numbers
type NumberGenerator interface {
	NextNumber() int64
}

// RegisterPersonInput represents the input for registering an individual client
type RegisterPersonInput struct {
	Name      string
	BirthDate time.Time
	TaxID     string
	Address   string
}

// OpenAccountInput represents the input for opening an account
type OpenAccountInput struct {
	ClientID uuid.UUID
	Kind     domain.AccountKind     // BASIC when empty
	Branch   string                 // domain.DefaultBranch when empty
	Limits   *domain.CheckingLimits // Optional: overrides the default checking limits
}

// OnboardingService handles client registration and account opening
type OnboardingService struct {
	ClientRepo    domain.ClientRepository
	AccountRepo   domain.AccountRepository
	Numbers       NumberGenerator
	DefaultLimits domain.CheckingLimits
	DefaultBranch string // Used when the input names no branch; empty means domain.DefaultBranch

	log    *slog.Logger
	tracer trace.Tracer
}

// NewOnboardingService creates a new OnboardingService instance
func NewOnboardingService(
	log *slog.Logger,
	clientRepo domain.ClientRepository,
	accountRepo domain.AccountRepository,
	numbers NumberGenerator,
	defaultLimits domain.CheckingLimits,
) *OnboardingService {
	return &OnboardingService{
		ClientRepo:    clientRepo,
		AccountRepo:   accountRepo,
		Numbers:       numbers,
		DefaultLimits: defaultLimits,
		log:           log,
		tracer:        otel.Tracer("github.com/Eduardo-JSF/desafio-03/internal/usecase/onboarding"),
	}
}

// RegisterPerson creates and stores an individual client
func (s *OnboardingService) RegisterPerson(ctx context.Context, input RegisterPersonInput) (*domain.Client, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.RegisterPerson")
	defer span.End()

	client := domain.NewPersonClient(input.Name, input.BirthDate, input.TaxID, input.Address)
	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.ClientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("client.id", client.ID.String()))
	s.log.InfoContext(ctx, "client registered", "client_id", client.ID)

	return client, nil
}

// OpenAccount opens an account for an existing client
// Logic:
//  1. Fetch the client
//  2. Draw a fresh account number
//  3. Open the account variant asked for; it registers itself with the client
//  4. Store the account, unlinking it from the client if that fails
func (s *OnboardingService) OpenAccount(ctx context.Context, input OpenAccountInput) (domain.Account, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.OpenAccount")
	defer span.End()

	// 1. Fetch the client
	client, err := s.ClientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	// 2. Draw a fresh account number
	number := s.Numbers.NextNumber()

	// 3. Open the account
	branch := input.Branch
	if branch == "" {
		branch = s.DefaultBranch
	}

	var account domain.Account
	switch input.Kind {
	case "", domain.AccountKindBasic:
		account, err = domain.OpenAccount(client, number, domain.WithBranch(branch))
	case domain.AccountKindChecking:
		limits := s.DefaultLimits
		if input.Limits != nil {
			limits = *input.Limits
		}
		account, err = domain.OpenCheckingAccount(client, number, limits, domain.WithBranch(branch))
	default:
		return nil, errors.New("invalid account kind: " + string(input.Kind))
	}
	if err != nil {
		return nil, err
	}

	// 4. Store the account; an unstored account must not stay linked to the client
	if err := s.AccountRepo.Create(ctx, account); err != nil {
		client.RemoveAccount(account)
		return nil, fmt.Errorf("failed to store account %d: %w", number, err)
	}

	span.SetAttributes(
		attribute.Int64("account.number", number),
		attribute.String("account.kind", string(account.Kind())),
	)
	s.log.InfoContext(ctx, "account opened",
		"client_id", client.ID,
		"account_number", number,
		"kind", account.Kind(),
		"branch", account.Branch(),
	)

	return account, nil
}

// ListAccounts returns the accounts of an existing client in opening order
func (s *OnboardingService) ListAccounts(ctx context.Context, clientID uuid.UUID) ([]domain.Account, error) {
	if _, err := s.ClientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.AccountRepo.ListByClient(ctx, clientID)
}
