package handlers

import (
	"github.com/gorilla/mux"
)

// NewRouter wires all routes. Everything except /auth/* sits behind
// the auth middleware.
func NewRouter(
	authMiddleware *AuthMiddleware,
	auth *AuthHandler,
	projects *ProjectHandler,
	columns *ColumnHandler,
	tasks *TaskHandler,
	taskLogs *TaskLogHandler,
	members *MemberHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	// Auth routes
	r.HandleFunc("/auth/register", auth.Register).Methods("POST")
	r.HandleFunc("/auth/login", auth.Login).Methods("POST")

	// Protected routes
	api := r.NewRoute().Subrouter()
	api.Use(authMiddleware.Auth)

	api.HandleFunc("/projects/", projects.List).Methods("GET")
	api.HandleFunc("/projects/", projects.Create).Methods("POST")

	api.HandleFunc("/columns/project/{id:[0-9]+}", columns.ListByProject).Methods("GET")
	api.HandleFunc("/columns/project/{id:[0-9]+}", columns.Create).Methods("POST")
	api.HandleFunc("/columns/{id:[0-9]+}", columns.Get).Methods("GET")
	api.HandleFunc("/columns/{id:[0-9]+}", columns.Update).Methods("PUT")
	api.HandleFunc("/columns/{id:[0-9]+}", columns.Delete).Methods("DELETE")

	api.HandleFunc("/tasks/column/{id:[0-9]+}", tasks.ListByColumn).Methods("GET")
	api.HandleFunc("/tasks/column/{id:[0-9]+}", tasks.Create).Methods("POST")
	api.HandleFunc("/tasks/{id:[0-9]+}", tasks.Get).Methods("GET")
	api.HandleFunc("/tasks/{id:[0-9]+}", tasks.Update).Methods("PUT")
	api.HandleFunc("/tasks/{id:[0-9]+}", tasks.Delete).Methods("DELETE")

	api.HandleFunc("/task_logs/task/{id:[0-9]+}", taskLogs.ListByTask).Methods("GET")

	api.HandleFunc("/project_members/project/{id:[0-9]+}", members.ListByProject).Methods("GET")
	api.HandleFunc("/project_members/project/{id:[0-9]+}", members.Create).Methods("POST")
	api.HandleFunc("/project_members/{id:[0-9]+}", members.Delete).Methods("DELETE")

	return r
}
