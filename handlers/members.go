package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kanbanboard/kanban-api/database"
	"github.com/kanbanboard/kanban-api/services"
)

// MemberHandler manages project memberships. Listing is open to owner
// and members; adding and removing members is owner-only.
type MemberHandler struct {
	store  *database.Store
	access *services.AccessService
}

func NewMemberHandler(store *database.Store, access *services.AccessService) *MemberHandler {
	return &MemberHandler{store: store, access: access}
}

// ListByProject returns a project's membership rows.
func (h *MemberHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.store.GetMembersByProject(r.Context(), projectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// Create adds a user to a project. Owner only; at most one membership
// per (project, user) pair.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
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
		respondMessage(w, http.StatusForbidden, "Only the project owner can add members")
		return
	}

	var req struct {
		UserID int64  `json:"UserID"`
		Role   string `json:"Role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.UserID == 0 {
		respondMessage(w, http.StatusUnprocessableEntity, "UserID is required")
		return
	}

	if _, err := h.store.GetUserByID(r.Context(), req.UserID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		respondStoreError(w, err)
		return
	}

	member, err := h.store.CreateMember(r.Context(), projectID, req.UserID, req.Role)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// Delete removes a membership row. Owner only.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}
	memberID, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid member id")
		return
	}

	member, err := h.store.GetMemberByID(r.Context(), memberID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	project, err := h.store.GetProjectByID(r.Context(), member.ProjectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !h.access.CanManage(project, userID) {
		respondMessage(w, http.StatusForbidden, "Only the project owner can remove members")
		return
	}

	if err := h.store.DeleteMember(r.Context(), memberID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Member removed from project")
}
