package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrAccountNotOwned is returned when a client acts on an account opened for
// another client.
var ErrAccountNotOwned = errors.New("account not owned by client")

// Person holds the personal data of an individual client
type Person struct {
	Name      string
	BirthDate time.Time
	TaxID     string
}

// Client represents an account holder in the domain layer
type Client struct {
	ID      uuid.UUID
	Address string
	Person  *Person // nil for non-individual clients

	mu       sync.RWMutex
	accounts []Account
}

// NewClient creates a client with no personal data
func NewClient(address string) *Client {
	return &Client{
		ID:      uuid.New(),
		Address: address,
	}
}

// NewPersonClient creates an individual client
func NewPersonClient(name string, birthDate time.Time, taxID, address string) *Client {
	c := NewClient(address)
	c.Person = &Person{
		Name:      name,
		BirthDate: birthDate,
		TaxID:     taxID,
	}
	return c
}

// Validate ensures the client adheres to domain rules
func (c *Client) Validate() error {
	if c.ID == uuid.Nil {
		return errors.New("client ID cannot be empty")
	}
	if c.Person != nil && c.Person.Name == "" {
		return errors.New("person name cannot be empty")
	}
	return nil
}

// DisplayName returns the holder name shown on account descriptions
func (c *Client) DisplayName() string {
	if c.Person == nil {
		return ""
	}
	return c.Person.Name
}

// AddAccount appends an account to the client's collection
func (c *Client) AddAccount(account Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, account)
}

// RemoveAccount drops an account from the client's collection, keeping the
// order of the rest. It reports whether the account was held.
func (c *Client) RemoveAccount(account Account) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, held := range c.accounts {
		if held == account {
			c.accounts = append(c.accounts[:i], c.accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Accounts returns a copy of the client's accounts in opening order
func (c *Client) Accounts() []Account {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Owns reports whether the account was opened for this client
func (c *Client) Owns(account Account) bool {
	return account != nil && account.Client() == c
}

// Submit applies the transaction to the account. It does not check that the
// client owns the account.
func (c *Client) Submit(account Account, tx Transaction) Outcome {
	return tx.Apply(account)
}

// Settle applies the transaction like Submit and also returns the balance
// read under the same lock, right after the transaction.
func (c *Client) Settle(account Account, tx Transaction) (Outcome, decimal.Decimal) {
	s := account.state()
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := tx.record(account)
	return outcome, s.balance
}
