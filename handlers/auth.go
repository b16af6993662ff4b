package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kanbanboard/kanban-api/database"
	"github.com/kanbanboard/kanban-api/services"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService *services.AuthService
	store       *database.Store
}

func NewAuthHandler(authService *services.AuthService, store *database.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"Username"`
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusUnprocessableEntity, "Username, Email and Password are required")
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if _, err := h.store.CreateUser(r.Context(), req.Username, req.Email, hash); err != nil {
		respondStoreError(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, "User created successfully")
}

// Login verifies the credentials and issues an access token. Unknown
// usernames and wrong passwords get the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"Username"`
		Password string `json:"Password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondStoreError(w, err)
		return
	}

	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.authService.CreateToken(user.UserID)
	if err != nil {
		log.Printf("Error creating token: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
