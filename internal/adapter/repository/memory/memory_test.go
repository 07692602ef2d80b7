package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
)

func TestClientRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository()

	first := domain.NewClient("Rua A, 1")
	second := domain.NewClient("Rua B, 2")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Same(t, second, got)

	err = repo.Create(ctx, first)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestClientRepository_NotFound(t *testing.T) {
	repo := NewClientRepository()

	client, err := repo.GetByID(context.Background(), uuid.New())

	assert.Nil(t, client)
	assert.True(t, errors.Is(err, domain.ErrClientNotFound))
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	owner := domain.NewClient("Rua A, 1")
	other := domain.NewClient("Rua B, 2")

	basic, err := domain.OpenAccount(owner, 10)
	require.NoError(t, err)
	checking, err := domain.OpenCheckingAccount(owner, 11, domain.DefaultCheckingLimits())
	require.NoError(t, err)
	foreign, err := domain.OpenAccount(other, 12)
	require.NoError(t, err)

	for _, account := range []domain.Account{basic, checking, foreign} {
		require.NoError(t, repo.Create(ctx, account))
	}

	got, err := repo.GetByNumber(ctx, 11)
	require.NoError(t, err)
	assert.Same(t, checking, got)

	owned, err := repo.ListByClient(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Same(t, basic, owned[0])
	assert.Same(t, checking, owned[1])

	none, err := repo.ListByClient(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)

	err = repo.Create(ctx, basic)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAccountRepository_NotFound(t *testing.T) {
	repo := NewAccountRepository()

	account, err := repo.GetByNumber(context.Background(), 404)

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domain.ErrAccountNotFound))
}
