package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMoveTask_UpdatesColumnAndLogsAtomically(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)
	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}
	src, dst := columns[0], columns[2]

	task, err := store.CreateTask(ctx, src.ColumnID, "Fix bug", "the one from prod", owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	if err := store.MoveTask(ctx, task, dst.ColumnID, owner.UserID); err != nil {
		t.Fatalf("MoveTask() error = %v", err)
	}

	got, err := store.GetTaskByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetTaskByID() error = %v", err)
	}
	if got.ColumnID != dst.ColumnID {
		t.Errorf("ColumnID = %d, want %d", got.ColumnID, dst.ColumnID)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("UpdatedAt was not refreshed by the move")
	}

	logs, err := store.GetLogsByTask(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetLogsByTask() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d log rows, want exactly 1", len(logs))
	}
	log := logs[0]
	if log.Action != "move" {
		t.Errorf("Action = %q, want %q", log.Action, "move")
	}
	if log.UserID != owner.UserID {
		t.Errorf("UserID = %d, want %d", log.UserID, owner.UserID)
	}
	wantMsg := fmt.Sprintf("Task moved from column %d to column %d", src.ColumnID, dst.ColumnID)
	if log.Message != wantMsg {
		t.Errorf("Message = %q, want %q", log.Message, wantMsg)
	}
}

func TestMoveTask_MissingDestinationLeavesNoPartialState(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)
	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}
	src := columns[0]

	task, err := store.CreateTask(ctx, src.ColumnID, "Fix bug", "", owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	if err := store.MoveTask(ctx, task, 9999, owner.UserID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MoveTask() error = %v, want ErrNotFound", err)
	}

	// Neither the task nor the log table may show any effect.
	got, err := store.GetTaskByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetTaskByID() error = %v", err)
	}
	if got.ColumnID != src.ColumnID {
		t.Errorf("ColumnID = %d, want %d (unchanged)", got.ColumnID, src.ColumnID)
	}

	logs, err := store.GetLogsByTask(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetLogsByTask() error = %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("got %d log rows after failed move, want 0", len(logs))
	}
}

func TestUpdateTask_RefreshesTimestamp(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)
	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}

	task, err := store.CreateTask(ctx, columns[0].ColumnID, "Fix bug", "", owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	created := task.UpdatedAt

	task.Title = "Fix the bug"
	if err := store.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	got, err := store.GetTaskByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetTaskByID() error = %v", err)
	}
	if got.Title != "Fix the bug" {
		t.Errorf("Title = %q, want %q", got.Title, "Fix the bug")
	}
	if !got.UpdatedAt.After(created) {
		t.Error("UpdatedAt was not refreshed by the update")
	}
	// No log entry for a plain update, only moves are logged.
	logs, err := store.GetLogsByTask(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetLogsByTask() error = %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("got %d log rows after plain update, want 0", len(logs))
	}
}

func TestDeleteTask_RemovesTaskAndLogs(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)
	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}

	task, err := store.CreateTask(ctx, columns[0].ColumnID, "Fix bug", "", owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if err := store.MoveTask(ctx, task, columns[1].ColumnID, owner.UserID); err != nil {
		t.Fatalf("MoveTask() error = %v", err)
	}

	if err := store.DeleteTask(ctx, task.TaskID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if _, err := store.GetTaskByID(ctx, task.TaskID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTaskByID() after delete error = %v, want ErrNotFound", err)
	}
	logs, err := store.GetLogsByTask(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetLogsByTask() error = %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("got %d log rows after task delete, want 0", len(logs))
	}
}
