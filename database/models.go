package database

import "time"

// User is an account that can own projects and be a member of others.
// The password hash never leaves the server.
type User struct {
	UserID       int64     `json:"UserID"`
	Username     string    `json:"Username"`
	Email        string    `json:"Email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"CreatedAt"`
}

// Project is owned by exactly one user. Ownership is immutable.
type Project struct {
	ProjectID   int64     `json:"ProjectID"`
	Name        string    `json:"Name"`
	Description string    `json:"Description"`
	OwnerID     int64     `json:"OwnerID"`
	CreatedAt   time.Time `json:"CreatedAt"`
}

// ProjectMember links a user to a project with a role. At most one row
// exists per (project, user) pair.
type ProjectMember struct {
	MemberID  int64  `json:"MemberID"`
	ProjectID int64  `json:"ProjectID"`
	UserID    int64  `json:"UserID"`
	Role      string `json:"Role"`
}

// Column is a workflow stage within a project, sorted by OrderIndex
// with ties broken by id.
type Column struct {
	ColumnID   int64  `json:"ColumnID"`
	Name       string `json:"Name"`
	OrderIndex int    `json:"OrderIndex"`
	ProjectID  int64  `json:"ProjectID"`
}

// Task lives in exactly one column. UpdatedAt refreshes on every mutation.
type Task struct {
	TaskID      int64     `json:"TaskID"`
	Title       string    `json:"Title"`
	Description string    `json:"Description"`
	ColumnID    int64     `json:"ColumnID"`
	CreatedBy   int64     `json:"CreatedBy"`
	CreatedAt   time.Time `json:"CreatedAt"`
	UpdatedAt   time.Time `json:"UpdatedAt"`
}

// TaskLog is an append-only audit record for a task. Rows are never
// updated or deleted once written.
type TaskLog struct {
	LogID     int64     `json:"LogID"`
	TaskID    int64     `json:"TaskID"`
	UserID    int64     `json:"UserID"`
	Action    string    `json:"Action"`
	Message   string    `json:"Message"`
	CreatedAt time.Time `json:"CreatedAt"`
}
