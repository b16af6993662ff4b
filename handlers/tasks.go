package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kanbanboard/kanban-api/database"
	"github.com/kanbanboard/kanban-api/services"
)

// TaskHandler handles tasks. Members hold the same task rights as the
// project owner.
type TaskHandler struct {
	store  *database.Store
	access *services.AccessService
}

func NewTaskHandler(store *database.Store, access *services.AccessService) *TaskHandler {
	return &TaskHandler{store: store, access: access}
}

// ListByColumn returns a column's tasks.
func (h *TaskHandler) ListByColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}
	columnID, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid column id")
		return
	}

	project, err := h.projectForColumn(r, columnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if ok, err := h.allowed(r, project, userID); err != nil {
		respondStoreError(w, err)
		return
	} else if !ok {
		respondMessage(w, http.StatusForbidden, "Access denied")
		return
	}

	tasks, err := h.store.GetTasksByColumn(r.Context(), columnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// Create adds a task to a column, recording the caller as its creator.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}
	columnID, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid column id")
		return
	}

	project, err := h.projectForColumn(r, columnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if ok, err := h.allowed(r, project, userID); err != nil {
		respondStoreError(w, err)
		return
	} else if !ok {
		respondMessage(w, http.StatusForbidden, "Access denied")
		return
	}

	var req struct {
		Title       string `json:"Title"`
		Description string `json:"Description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Title == "" {
		respondMessage(w, http.StatusUnprocessableEntity, "Title is required")
		return
	}

	task, err := h.store.CreateTask(r.Context(), columnID, req.Title, req.Description, userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// Get returns a single task.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	task, project, err := h.resolveTask(r, taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if ok, err := h.allowed(r, project, userID); err != nil {
		respondStoreError(w, err)
		return
	} else if !ok {
		respondMessage(w, http.StatusForbidden, "Access denied")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Update applies a partial update. A ColumnID different from the
// current one is a move: the task update and its log entry commit in
// one transaction.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	task, project, err := h.resolveTask(r, taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if ok, err := h.allowed(r, project, userID); err != nil {
		respondStoreError(w, err)
		return
	} else if !ok {
		respondMessage(w, http.StatusForbidden, "Access denied")
		return
	}

	var req struct {
		Title       *string `json:"Title"`
		Description *string `json:"Description"`
		ColumnID    *int64  `json:"ColumnID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			respondMessage(w, http.StatusUnprocessableEntity, "Title must not be empty")
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	if req.ColumnID != nil && *req.ColumnID != task.ColumnID {
		err = h.store.MoveTask(r.Context(), task, *req.ColumnID, userID)
	} else {
		err = h.store.UpdateTask(r.Context(), task)
	}
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Delete removes a task and its logs.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	_, project, err := h.resolveTask(r, taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if ok, err := h.allowed(r, project, userID); err != nil {
		respondStoreError(w, err)
		return
	} else if !ok {
		respondMessage(w, http.StatusForbidden, "Access denied")
		return
	}

	if err := h.store.DeleteTask(r.Context(), taskID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Task deleted")
}

func (h *TaskHandler) allowed(r *http.Request, project *database.Project, userID int64) (bool, error) {
	return h.access.CanWorkWithTasks(r.Context(), project, userID)
}

func (h *TaskHandler) projectForColumn(r *http.Request, columnID int64) (*database.Project, error) {
	column, err := h.store.GetColumnByID(r.Context(), columnID)
	if err != nil {
		return nil, err
	}
	return h.store.GetProjectByID(r.Context(), column.ProjectID)
}

func (h *TaskHandler) resolveTask(r *http.Request, taskID int64) (*database.Task, *database.Project, error) {
	task, err := h.store.GetTaskByID(r.Context(), taskID)
	if err != nil {
		return nil, nil, err
	}
	project, err := h.projectForColumn(r, task.ColumnID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}
