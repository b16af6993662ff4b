package handlers

import (
	"net/http"

	"github.com/kanbanboard/kanban-api/database"
	"github.com/kanbanboard/kanban-api/services"
)

// TaskLogHandler exposes a task's audit trail, newest entries first.
// Logs are read-only; move entries are written by the store as part of
// the task move transaction.
type TaskLogHandler struct {
	store  *database.Store
	access *services.AccessService
}

func NewTaskLogHandler(store *database.Store, access *services.AccessService) *TaskLogHandler {
	return &TaskLogHandler{store: store, access: access}
}

// ListByTask returns the log entries of a task.
func (h *TaskLogHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}
	taskID, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.store.GetTaskByID(r.Context(), taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	column, err := h.store.GetColumnByID(r.Context(), task.ColumnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	project, err := h.store.GetProjectByID(r.Context(), column.ProjectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	allowed, err := h.access.CanRead(r.Context(), project, userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !allowed {
		respondMessage(w, http.StatusForbidden, "Access denied")
		return
	}

	logs, err := h.store.GetLogsByTask(r.Context(), taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, logs)
}
