package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
)

// clientRepository implements domain.ClientRepository
type clientRepository struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*domain.Client
}

// NewClientRepository creates a new in-memory client repository
func NewClientRepository() domain.ClientRepository {
	return &clientRepository{clients: make(map[uuid.UUID]*domain.Client)}
}

// GetByID retrieves a client by its ID
func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", id, domain.ErrClientNotFound)
	}
	return client, nil
}

// Create registers a new client
func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[client.ID]; exists {
		return fmt.Errorf("failed to create client: client %s already exists", client.ID)
	}
	r.clients[client.ID] = client
	return nil
}
