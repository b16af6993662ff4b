package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		project_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		owner_id INTEGER NOT NULL REFERENCES users(user_id),
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS project_members (
		member_id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(project_id),
		user_id INTEGER NOT NULL REFERENCES users(user_id),
		role TEXT NOT NULL DEFAULT 'member',
		UNIQUE (project_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS columns (
		column_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		project_id INTEGER NOT NULL REFERENCES projects(project_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		column_id INTEGER NOT NULL REFERENCES columns(column_id),
		created_by INTEGER NOT NULL REFERENCES users(user_id),
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS task_logs (
		log_id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL REFERENCES tasks(task_id),
		user_id INTEGER NOT NULL REFERENCES users(user_id),
		action TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
}

// InitDB opens the SQLite database at path and creates the schema if
// it does not exist yet. Pass ":memory:" for an in-memory database.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer connection: avoids SQLITE_BUSY under concurrent
	// requests, and keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Required for the REFERENCES clauses to be enforced at all.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	log.Println("Database initialized successfully")
	return db, nil
}
