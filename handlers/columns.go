package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kanbanboard/kanban-api/database"
	"github.com/kanbanboard/kanban-api/services"
)

// ColumnHandler handles column reads and the owner-only structural
// changes. The target entity is resolved before the relationship is
// evaluated, so a missing id is always 404 and never 403.
type ColumnHandler struct {
	store  *database.Store
	access *services.AccessService
}

func NewColumnHandler(store *database.Store, access *services.AccessService) *ColumnHandler {
	return &ColumnHandler{store: store, access: access}
}

// ListByProject returns a project's columns in display order.
func (h *ColumnHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}
	projectID, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	project, err := h.store.GetProjectByID(r.Context(), projectID)
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

	columns, err := h.store.GetColumnsByProject(r.Context(), projectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, columns)
}

// Create adds a column to a project. Owner only.
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}
	projectID, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	project, err := h.store.GetProjectByID(r.Context(), projectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !h.access.CanManage(project, userID) {
		respondMessage(w, http.StatusForbidden, "Only the project owner can create columns")
		return
	}

	var req struct {
		Name       string `json:"Name"`
		OrderIndex int    `json:"OrderIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusUnprocessableEntity, "Name is required")
		return
	}

	column, err := h.store.CreateColumn(r.Context(), projectID, req.Name, req.OrderIndex)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, column)
}

// Get returns a single column.
func (h *ColumnHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	column, project, err := h.resolveColumn(r, columnID)
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
	respondJSON(w, http.StatusOK, column)
}

// Update changes a column's name and/or order index. Owner only.
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	column, project, err := h.resolveColumn(r, columnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !h.access.CanManage(project, userID) {
		respondMessage(w, http.StatusForbidden, "Only the project owner can modify columns")
		return
	}

	var req struct {
		Name       *string `json:"Name"`
		OrderIndex *int    `json:"OrderIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.store.UpdateColumn(r.Context(), column, req.Name, req.OrderIndex); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, column)
}

// Delete removes a column. Owner only; blocked while the column still
// contains tasks.
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	_, project, err := h.resolveColumn(r, columnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !h.access.CanManage(project, userID) {
		respondMessage(w, http.StatusForbidden, "Only the project owner can delete columns")
		return
	}

	if err := h.store.DeleteColumn(r.Context(), columnID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Column deleted")
}

func (h *ColumnHandler) resolveColumn(r *http.Request, columnID int64) (*database.Column, *database.Project, error) {
	column, err := h.store.GetColumnByID(r.Context(), columnID)
	if err != nil {
		return nil, nil, err
	}
	project, err := h.store.GetProjectByID(r.Context(), column.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return column, project, nil
}
