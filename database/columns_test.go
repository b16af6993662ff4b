package database

import (
	"context"
	"errors"
	"testing"
)

func TestCreateProject_SeedsDefaultColumns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)

	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(columns))
	}

	want := []struct {
		name  string
		order int
	}{
		{"To Do", 1},
		{"In Progress", 2},
		{"Done", 3},
	}
	for i, w := range want {
		if columns[i].Name != w.name || columns[i].OrderIndex != w.order {
			t.Errorf("column %d = (%q, %d), want (%q, %d)",
				i, columns[i].Name, columns[i].OrderIndex, w.name, w.order)
		}
	}
}

func TestEnsureDefaultColumns_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)

	// Project creation seeded once already; two more runs must not
	// duplicate anything.
	for i := 0; i < 2; i++ {
		if err := store.EnsureDefaultColumns(ctx, project.ProjectID); err != nil {
			t.Fatalf("EnsureDefaultColumns() run %d error = %v", i, err)
		}
	}

	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}
	if len(columns) != 3 {
		t.Errorf("got %d columns after repeated seeding, want 3", len(columns))
	}
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)

	if err := store.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}
	if err := store.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults() second run error = %v", err)
	}

	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}
	if len(columns) != 3 {
		t.Errorf("got %d columns after startup seeding, want 3", len(columns))
	}
}

func TestGetColumnsByProject_Order(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)

	// Same order index as the seeded "To Do"; insertion order breaks
	// the tie.
	if _, err := store.CreateColumn(ctx, project.ProjectID, "Backlog", 1); err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	if _, err := store.CreateColumn(ctx, project.ProjectID, "Icebox", 0); err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}

	columns, err := store.GetColumnsByProject(ctx, project.ProjectID)
	if err != nil {
		t.Fatalf("GetColumnsByProject() error = %v", err)
	}

	wantNames := []string{"Icebox", "To Do", "Backlog", "In Progress", "Done"}
	if len(columns) != len(wantNames) {
		t.Fatalf("got %d columns, want %d", len(columns), len(wantNames))
	}
	for i, name := range wantNames {
		if columns[i].Name != name {
			t.Errorf("column %d = %q, want %q", i, columns[i].Name, name)
		}
	}
}

func TestUpdateColumn_Partial(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)
	column, err := store.CreateColumn(ctx, project.ProjectID, "Review", 4)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}

	newName := "Code Review"
	if err := store.UpdateColumn(ctx, column, &newName, nil); err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}

	got, err := store.GetColumnByID(ctx, column.ColumnID)
	if err != nil {
		t.Fatalf("GetColumnByID() error = %v", err)
	}
	if got.Name != "Code Review" {
		t.Errorf("Name = %q, want %q", got.Name, "Code Review")
	}
	if got.OrderIndex != 4 {
		t.Errorf("OrderIndex = %d, want 4 (must be untouched)", got.OrderIndex)
	}
	if got.ProjectID != project.ProjectID {
		t.Errorf("ProjectID = %d, want %d (must never change)", got.ProjectID, project.ProjectID)
	}
}

func TestDeleteColumn_BlockedWhileTasksExist(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)
	column, err := store.CreateColumn(ctx, project.ProjectID, "Review", 4)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	if _, err := store.CreateTask(ctx, column.ColumnID, "Fix bug", "", owner.UserID); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	if err := store.DeleteColumn(ctx, column.ColumnID); !errors.Is(err, ErrColumnNotEmpty) {
		t.Fatalf("DeleteColumn() error = %v, want ErrColumnNotEmpty", err)
	}

	// Column must still be there.
	if _, err := store.GetColumnByID(ctx, column.ColumnID); err != nil {
		t.Errorf("GetColumnByID() after blocked delete error = %v", err)
	}
}

func TestDeleteColumn_Empty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := createTestProject(t, store, "P1", owner.UserID)
	column, err := store.CreateColumn(ctx, project.ProjectID, "Review", 4)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}

	if err := store.DeleteColumn(ctx, column.ColumnID); err != nil {
		t.Fatalf("DeleteColumn() error = %v", err)
	}
	if _, err := store.GetColumnByID(ctx, column.ColumnID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetColumnByID() after delete error = %v, want ErrNotFound", err)
	}

	if err := store.DeleteColumn(ctx, column.ColumnID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteColumn() twice error = %v, want ErrNotFound", err)
	}
}
