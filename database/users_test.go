package database

import (
	"context"
	"errors"
	"testing"
)

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, "alice", "alice@example.com", "hash"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	_, err := store.CreateUser(ctx, "alice", "other@example.com", "hash")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("CreateUser() error = %v, want ErrUsernameTaken", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, "alice", "alice@example.com", "hash"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	_, err := store.CreateUser(ctx, "bob", "alice@example.com", "hash")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("CreateUser() error = %v, want ErrEmailTaken", err)
	}
}

func TestGetUserByUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, store, "alice")

	got, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if got.UserID != created.UserID {
		t.Errorf("GetUserByUsername() UserID = %d, want %d", got.UserID, created.UserID)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("GetUserByUsername() Email = %q, want %q", got.Email, "alice@example.com")
	}

	if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}
