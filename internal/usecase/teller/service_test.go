package teller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
)

// MockClientRepository is a mock implementation of ClientRepository for testing
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number int64) (domain.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Account, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

type fixture struct {
	service     *TellerService
	clientRepo  *MockClientRepository
	accountRepo *MockAccountRepository
	client      *domain.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clientRepo := new(MockClientRepository)
	accountRepo := new(MockAccountRepository)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := domain.NewClient("Rua A, 1")
	clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)

	return &fixture{
		service:     NewTellerService(log, clientRepo, accountRepo),
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		client:      client,
	}
}

func (f *fixture) register(account domain.Account) {
	f.accountRepo.On("GetByNumber", mock.Anything, account.Number()).Return(account, nil)
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := domain.OpenAccount(f.client, 1)
	require.NoError(t, err)
	f.register(account)

	receipt, err := f.service.Deposit(ctx, TransactionInput{
		ClientID:      f.client.ID,
		AccountNumber: 1,
		Amount:        decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), receipt.AccountNumber)
	assert.Equal(t, domain.TransactionKindDeposit, receipt.Kind)
	assert.True(t, receipt.Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, receipt.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, account.History().Len())
	f.clientRepo.AssertExpectations(t)
	f.accountRepo.AssertExpectations(t)
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := domain.OpenCheckingAccount(f.client, 2, domain.DefaultCheckingLimits())
	require.NoError(t, err)
	f.register(account)

	receipt, err := f.service.Withdraw(ctx, TransactionInput{
		ClientID:      f.client.ID,
		AccountNumber: 2,
		Amount:        decimal.NewFromInt(400),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionKindWithdrawal, receipt.Kind)
	assert.True(t, receipt.Balance.Equal(decimal.NewFromInt(-400)))
	assert.Equal(t, 1, account.WithdrawalsUsed())
}

func TestSubmit_RefusedOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		open    func(client *domain.Client) domain.Account
		call    func(s *TellerService, ctx context.Context, input TransactionInput) (*Receipt, error)
		amount  decimal.Decimal
		wantErr error
	}{
		{
			name: "Non-positive deposit",
			open: func(client *domain.Client) domain.Account {
				a, _ := domain.OpenAccount(client, 1)
				return a
			},
			call:    (*TellerService).Deposit,
			amount:  decimal.Zero,
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "Withdrawal above balance",
			open: func(client *domain.Client) domain.Account {
				a, _ := domain.OpenAccount(client, 1)
				return a
			},
			call:    (*TellerService).Withdraw,
			amount:  decimal.NewFromInt(1),
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name: "Withdrawal with exhausted cap",
			open: func(client *domain.Client) domain.Account {
				a, _ := domain.OpenCheckingAccount(client, 1, domain.CheckingLimits{
					OverdraftLimit: decimal.NewFromInt(500),
					MaxWithdrawals: 0,
				})
				return a
			},
			call:    (*TellerService).Withdraw,
			amount:  decimal.NewFromInt(1),
			wantErr: domain.ErrWithdrawalLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			account := tt.open(f.client)
			f.register(account)

			receipt, err := tt.call(f.service, context.Background(), TransactionInput{
				ClientID:      f.client.ID,
				AccountNumber: account.Number(),
				Amount:        tt.amount,
			})

			assert.Nil(t, receipt)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, 0, account.History().Len())
		})
	}
}

func TestSubmit_ForeignAccount(t *testing.T) {
	f := newFixture(t)

	stranger := domain.NewClient("Rua Z, 9")
	account, err := domain.OpenAccount(stranger, 5)
	require.NoError(t, err)
	f.register(account)

	receipt, err := f.service.Deposit(context.Background(), TransactionInput{
		ClientID:      f.client.ID,
		AccountNumber: 5,
		Amount:        decimal.NewFromInt(10),
	})

	assert.Nil(t, receipt)
	assert.True(t, errors.Is(err, domain.ErrAccountNotOwned))
	assert.True(t, account.Balance().Equal(decimal.Zero))
}

func TestSubmit_LookupErrors(t *testing.T) {
	t.Run("Unknown client", func(t *testing.T) {
		f := newFixture(t)
		unknown := uuid.New()
		f.clientRepo.On("GetByID", mock.Anything, unknown).Return(nil, domain.ErrClientNotFound)

		_, err := f.service.Deposit(context.Background(), TransactionInput{ClientID: unknown, AccountNumber: 1, Amount: decimal.NewFromInt(1)})

		assert.True(t, errors.Is(err, domain.ErrClientNotFound))
		f.accountRepo.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
	})

	t.Run("Unknown account", func(t *testing.T) {
		f := newFixture(t)
		f.accountRepo.On("GetByNumber", mock.Anything, int64(77)).Return(nil, domain.ErrAccountNotFound)

		_, err := f.service.Withdraw(context.Background(), TransactionInput{ClientID: f.client.ID, AccountNumber: 77, Amount: decimal.NewFromInt(1)})

		assert.True(t, errors.Is(err, domain.ErrAccountNotFound))
	})
}

func TestDeposit_ConcurrentReceiptsCarryTheirOwnBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := domain.OpenAccount(f.client, 5)
	require.NoError(t, err)
	f.register(account)

	const workers = 32
	receipts := make(chan *Receipt, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := f.service.Deposit(ctx, TransactionInput{
				ClientID:      f.client.ID,
				AccountNumber: 5,
				Amount:        decimal.NewFromInt(10),
			})
			if err == nil {
				receipts <- receipt
			}
		}()
	}
	wg.Wait()
	close(receipts)

	seen := make(map[string]bool, workers)
	for receipt := range receipts {
		seen[receipt.Balance.String()] = true
	}

	assert.Len(t, seen, workers)
	assert.True(t, seen[decimal.NewFromInt(10*workers).String()])
}
