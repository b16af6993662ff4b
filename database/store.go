package database

import (
	"database/sql"
	"errors"
)

// Sentinel errors returned by Store methods. Handlers map these onto
// HTTP statuses.
var (
	ErrNotFound        = errors.New("not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
	ErrDuplicateMember = errors.New("user is already a member of this project")
	ErrColumnNotEmpty  = errors.New("column still contains tasks")
)

// Store handles all database operations for the kanban entities.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}
