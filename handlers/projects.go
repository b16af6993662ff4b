package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kanbanboard/kanban-api/database"
)

// ProjectHandler handles the project collection. A project listing
// only ever shows the caller's own projects.
type ProjectHandler struct {
	store *database.Store
}

func NewProjectHandler(store *database.Store) *ProjectHandler {
	return &ProjectHandler{store: store}
}

// List returns the projects owned by the caller.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}

	projects, err := h.store.GetProjectsByOwner(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// Create makes a new project owned by the caller and seeds its
// default columns.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}

	var req struct {
		Name        string `json:"Name"`
		Description string `json:"Description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Name == "" {
		respondMessage(w, http.StatusUnprocessableEntity, "Name is required")
		return
	}

	project, err := h.store.CreateProject(r.Context(), req.Name, req.Description, userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}
