package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kanbanboard/kanban-api/database"
)

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondMessage writes the {"message": ...} body used for both
// errors and confirmation responses.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondStoreError maps store errors onto HTTP statuses. Anything
// that is not a known sentinel is a server error.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, database.ErrUsernameTaken):
		respondMessage(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, database.ErrEmailTaken):
		respondMessage(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, database.ErrDuplicateMember):
		respondMessage(w, http.StatusBadRequest, "User is already a member of this project")
	case errors.Is(err, database.ErrColumnNotEmpty):
		respondMessage(w, http.StatusBadRequest, "Column still contains tasks")
	default:
		log.Printf("Store error: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}
