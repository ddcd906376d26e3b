package service

import (
	"context"
	"testing"

	"github.com/aegis-safety/backend/internal/dto"
	apperrors "github.com/aegis-safety/backend/internal/errors"
	"github.com/aegis-safety/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, store *memStore) *model.Account {
	t.Helper()
	account := &model.Account{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "irrelevant",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, store.Create(context.Background(), account))
	return account
}

func TestAccountService_GetByID(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store)
	account := seedAccount(t, store)

	resp, err := svc.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, "Ada", resp.FirstName)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store)
	account := seedAccount(t, store)

	resp, err := svc.UpdateProfile(context.Background(), account.ID, &dto.UpdateProfileRequest{
		FirstName: "  Grace ",
		Phone:     "+15551234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", resp.FirstName)
	assert.Equal(t, "Lovelace", resp.LastName)
	assert.Equal(t, "+15551234567", resp.Phone)

	// An empty request changes nothing.
	resp, err = svc.UpdateProfile(context.Background(), account.ID, &dto.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Grace", resp.FirstName)

	_, err = svc.UpdateProfile(context.Background(), 999, &dto.UpdateProfileRequest{FirstName: "X"})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestAccountService_SetActive(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store)
	account := seedAccount(t, store)

	require.NoError(t, svc.SetActive(context.Background(), account.ID, false))

	got, err := store.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.SetActive(context.Background(), account.ID, true))
	assert.ErrorIs(t, svc.SetActive(context.Background(), 999, false), apperrors.ErrAccountNotFound)
}

func TestAccountService_SetRole(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store)
	account := seedAccount(t, store)

	require.NoError(t, svc.SetRole(context.Background(), account.ID, model.RoleModerator))

	got, err := store.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleModerator, got.Role)

	assert.ErrorIs(t, svc.SetRole(context.Background(), account.ID, "superuser"), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetRole(context.Background(), 999, model.RoleAdmin), apperrors.ErrAccountNotFound)
}
