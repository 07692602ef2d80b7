package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Set of lookup errors returned by repositories.
var (
	ErrClientNotFound  = errors.New("client not found")
	ErrAccountNotFound = errors.New("account not found")
)

// ClientRepository defines the interface for client registry operations
type ClientRepository interface {
	// GetByID retrieves a client by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// Create registers a new client
	Create(ctx context.Context, client *Client) error
}

// AccountRepository defines the interface for account registry operations
type AccountRepository interface {
	// GetByNumber retrieves an account by its number
	GetByNumber(ctx context.Context, number int64) (Account, error)

	// Create registers a new account
	Create(ctx context.Context, account Account) error

	// ListByClient retrieves the accounts owned by a client, in opening order
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]Account, error)
}
