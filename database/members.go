package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// CreateMember adds a user to a project. The UNIQUE(project_id,
// user_id) constraint guarantees the duplicate check and the insert
// cannot be interleaved by a concurrent writer.
func (s *Store) CreateMember(ctx context.Context, projectID, userID int64, role string) (*ProjectMember, error) {
	if role == "" {
		role = "member"
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO project_members (project_id, user_id, role) VALUES (?, ?, ?)",
		projectID, userID, role,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrDuplicateMember
		}
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get member id: %w", err)
	}
	return &ProjectMember{MemberID: id, ProjectID: projectID, UserID: userID, Role: role}, nil
}

func (s *Store) GetMemberByID(ctx context.Context, id int64) (*ProjectMember, error) {
	var m ProjectMember
	err := s.db.QueryRowContext(ctx,
		"SELECT member_id, project_id, user_id, role FROM project_members WHERE member_id = ?",
		id,
	).Scan(&m.MemberID, &m.ProjectID, &m.UserID, &m.Role)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan member: %w", err)
	}
	return &m, nil
}

func (s *Store) GetMembersByProject(ctx context.Context, projectID int64) ([]ProjectMember, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, project_id, user_id, role FROM project_members WHERE project_id = ? ORDER BY member_id",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []ProjectMember{}
	for rows.Next() {
		var m ProjectMember
		if err := rows.Scan(&m.MemberID, &m.ProjectID, &m.UserID, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM project_members WHERE member_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsMember reports whether the user has a membership row for the
// project. Ownership is not considered here; the access layer treats
// it separately.
func (s *Store) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?",
		projectID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}
