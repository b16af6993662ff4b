package database

import (
	"context"
	"testing"
)

// setupTestStore creates a Store over an in-memory database with the
// full schema.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func createTestUser(t *testing.T, s *Store, username string) *User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user %q: %v", username, err)
	}
	return u
}

func createTestProject(t *testing.T, s *Store, name string, ownerID int64) *Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), name, "", ownerID)
	if err != nil {
		t.Fatalf("Failed to create project %q: %v", name, err)
	}
	return p
}
