package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Default workflow stages seeded into every project that has no
// columns yet.
var defaultColumns = []struct {
	Name       string
	OrderIndex int
}{
	{"To Do", 1},
	{"In Progress", 2},
	{"Done", 3},
}

// execer covers both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func ensureDefaultColumns(ctx context.Context, e execer, projectID int64) error {
	var count int
	err := e.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns WHERE project_id = ?", projectID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count columns: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, c := range defaultColumns {
		_, err := e.ExecContext(ctx,
			"INSERT INTO columns (name, order_index, project_id) VALUES (?, ?, ?)",
			c.Name, c.OrderIndex, projectID,
		)
		if err != nil {
			return fmt.Errorf("failed to seed column %q: %w", c.Name, err)
		}
	}
	return nil
}

// EnsureDefaultColumns seeds the default workflow columns for a
// project. It is idempotent: a project that already has columns is
// left untouched.
func (s *Store) EnsureDefaultColumns(ctx context.Context, projectID int64) error {
	return ensureDefaultColumns(ctx, s.db, projectID)
}

// SeedDefaults runs the startup seeding pass: every project without
// columns receives the default workflow stages. Re-running it is a
// no-op.
func (s *Store) SeedDefaults(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT project_id FROM projects WHERE project_id NOT IN (SELECT DISTINCT project_id FROM columns)",
	)
	if err != nil {
		return fmt.Errorf("failed to query unseeded projects: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan project id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.EnsureDefaultColumns(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateColumn(ctx context.Context, projectID int64, name string, orderIndex int) (*Column, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO columns (name, order_index, project_id) VALUES (?, ?, ?)",
		name, orderIndex, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert column: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get column id: %w", err)
	}
	return &Column{ColumnID: id, Name: name, OrderIndex: orderIndex, ProjectID: projectID}, nil
}

func (s *Store) GetColumnByID(ctx context.Context, id int64) (*Column, error) {
	var c Column
	err := s.db.QueryRowContext(ctx,
		"SELECT column_id, name, order_index, project_id FROM columns WHERE column_id = ?",
		id,
	).Scan(&c.ColumnID, &c.Name, &c.OrderIndex, &c.ProjectID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan column: %w", err)
	}
	return &c, nil
}

// GetColumnsByProject returns a project's columns sorted by order
// index, ties broken by insertion order.
func (s *Store) GetColumnsByProject(ctx context.Context, projectID int64) ([]Column, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT column_id, name, order_index, project_id FROM columns WHERE project_id = ? ORDER BY order_index, column_id",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	columns := []Column{}
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.ColumnID, &c.Name, &c.OrderIndex, &c.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

// UpdateColumn applies the non-nil fields to the column. ProjectID is
// never changed.
func (s *Store) UpdateColumn(ctx context.Context, c *Column, name *string, orderIndex *int) error {
	if name != nil {
		c.Name = *name
	}
	if orderIndex != nil {
		c.OrderIndex = *orderIndex
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE columns SET name = ?, order_index = ? WHERE column_id = ?",
		c.Name, c.OrderIndex, c.ColumnID,
	)
	if err != nil {
		return fmt.Errorf("failed to update column: %w", err)
	}
	return nil
}

// DeleteColumn removes a column. Deletion is blocked while the column
// still contains tasks.
func (s *Store) DeleteColumn(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var tasks int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE column_id = ?", id).Scan(&tasks); err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if tasks > 0 {
		return ErrColumnNotEmpty
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM columns WHERE column_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
