package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateProject inserts a new project owned by ownerID and seeds its
// default workflow columns in the same transaction.
func (s *Store) CreateProject(ctx context.Context, name, description string, ownerID int64) (*Project, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO projects (name, description, owner_id, created_at) VALUES (?, ?, ?, ?)",
		name, description, ownerID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get project id: %w", err)
	}

	if err := ensureDefaultColumns(ctx, tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &Project{
		ProjectID:   id,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
	}, nil
}

// GetProjectsByOwner returns all projects owned by the given user.
func (s *Store) GetProjectsByOwner(ctx context.Context, ownerID int64) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT project_id, name, description, owner_id, created_at FROM projects WHERE owner_id = ? ORDER BY project_id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ProjectID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) GetProjectByID(ctx context.Context, id int64) (*Project, error) {
	var p Project
	err := s.db.QueryRowContext(ctx,
		"SELECT project_id, name, description, owner_id, created_at FROM projects WHERE project_id = ?",
		id,
	).Scan(&p.ProjectID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return &p, nil
}
