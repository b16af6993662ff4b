package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) CreateTask(ctx context.Context, columnID int64, title, description string, createdBy int64) (*Task, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (title, description, column_id, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		title, description, columnID, createdBy, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get task id: %w", err)
	}
	return &Task{
		TaskID:      id,
		Title:       title,
		Description: description,
		ColumnID:    columnID,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *Store) GetTaskByID(ctx context.Context, id int64) (*Task, error) {
	var t Task
	err := s.db.QueryRowContext(ctx,
		"SELECT task_id, title, description, column_id, created_by, created_at, updated_at FROM tasks WHERE task_id = ?",
		id,
	).Scan(&t.TaskID, &t.Title, &t.Description, &t.ColumnID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return &t, nil
}

func (s *Store) GetTasksByColumn(ctx context.Context, columnID int64) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT task_id, title, description, column_id, created_by, created_at, updated_at FROM tasks WHERE column_id = ? ORDER BY task_id",
		columnID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.TaskID, &t.Title, &t.Description, &t.ColumnID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask writes the task's title and description and refreshes its
// update timestamp. Column moves go through MoveTask instead.
func (s *Store) UpdateTask(ctx context.Context, t *Task) error {
	t.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, updated_at = ? WHERE task_id = ?",
		t.Title, t.Description, t.UpdatedAt, t.TaskID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// MoveTask moves the task into the destination column and appends the
// "move" log entry in one transaction, so a task update without its
// log entry is never observable. The task's title and description are
// written too, so a single PUT can rename and move at once. Returns
// ErrNotFound when the destination column does not exist.
func (s *Store) MoveTask(ctx context.Context, t *Task, destColumnID, actorID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns WHERE column_id = ?", destColumnID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check destination column: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	now := time.Now().UTC()
	sourceColumnID := t.ColumnID

	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, column_id = ?, updated_at = ? WHERE task_id = ?",
		t.Title, t.Description, destColumnID, now, t.TaskID,
	)
	if err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	message := fmt.Sprintf("Task moved from column %d to column %d", sourceColumnID, destColumnID)
	_, err = tx.ExecContext(ctx,
		"INSERT INTO task_logs (task_id, user_id, action, message, created_at) VALUES (?, ?, 'move', ?, ?)",
		t.TaskID, actorID, message, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.ColumnID = destColumnID
	t.UpdatedAt = now
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Logs reference the task, so they go first.
	if _, err := tx.ExecContext(ctx, "DELETE FROM task_logs WHERE task_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete task logs: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE task_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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

// GetLogsByTask returns a task's log entries, newest first.
func (s *Store) GetLogsByTask(ctx context.Context, taskID int64) ([]TaskLog, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT log_id, task_id, user_id, action, message, created_at FROM task_logs WHERE task_id = ? ORDER BY created_at DESC, log_id DESC",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query task logs: %w", err)
	}
	defer rows.Close()

	logs := []TaskLog{}
	for rows.Next() {
		var l TaskLog
		if err := rows.Scan(&l.LogID, &l.TaskID, &l.UserID, &l.Action, &l.Message, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
