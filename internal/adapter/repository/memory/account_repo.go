package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]domain.Account
	byClient map[uuid.UUID][]int64
}

// NewAccountRepository creates a new in-memory account repository
func NewAccountRepository() domain.AccountRepository {
	return &accountRepository{
		accounts: make(map[int64]domain.Account),
		byClient: make(map[uuid.UUID][]int64),
	}
}

// GetByNumber retrieves an account by its number
func (r *accountRepository) GetByNumber(ctx context.Context, number int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[number]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", number, domain.ErrAccountNotFound)
	}
	return account, nil
}

// Create registers a new account under its owning client
func (r *accountRepository) Create(ctx context.Context, account domain.Account) error {
	if account.Client() == nil {
		return fmt.Errorf("failed to create account %d: account has no client", account.Number())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Number()]; exists {
		return fmt.Errorf("failed to create account: account %d already exists", account.Number())
	}

	clientID := account.Client().ID
	r.accounts[account.Number()] = account
	r.byClient[clientID] = append(r.byClient[clientID], account.Number())
	return nil
}

// ListByClient retrieves the accounts owned by a client, in opening order
func (r *accountRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	numbers := r.byClient[clientID]
	accounts := make([]domain.Account, 0, len(numbers))
	for _, number := range numbers {
		accounts = append(accounts, r.accounts[number])
	}
	return accounts, nil
}
