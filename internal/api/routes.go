package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, logRequests(s.logger, s.metrics), recoverPanics(s.logger))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	// Boards
	api.HandleFunc("/boards", s.handleListBoards).Methods(http.MethodGet)
	api.HandleFunc("/boards", s.handleCreateBoard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{boardId}", s.handleGetBoard).Methods(http.MethodGet)
	api.HandleFunc("/boards/{boardId}", s.handleRenameBoard).Methods(http.MethodPatch)
	api.HandleFunc("/boards/{boardId}", s.handleDeleteBoard).Methods(http.MethodDelete)
	api.HandleFunc("/boards/{boardId}/export", s.handleExportBoard).Methods(http.MethodPost)

	// Columns
	api.HandleFunc("/boards/{boardId}/columns", s.handleListColumns).Methods(http.MethodGet)
	api.HandleFunc("/boards/{boardId}/columns", s.handleCreateColumn).Methods(http.MethodPost)
	api.HandleFunc("/columns/{columnId}", s.handleRenameColumn).Methods(http.MethodPatch)
	api.HandleFunc("/columns/{columnId}", s.handleDeleteColumn).Methods(http.MethodDelete)

	// Cards
	api.HandleFunc("/columns/{columnId}/cards", s.handleListCards).Methods(http.MethodGet)
	api.HandleFunc("/columns/{columnId}/cards", s.handleCreateCard).Methods(http.MethodPost)
	api.HandleFunc("/cards/{cardId}", s.handleGetCard).Methods(http.MethodGet)
	api.HandleFunc("/cards/{cardId}", s.handleUpdateCard).Methods(http.MethodPatch)
	api.HandleFunc("/cards/{cardId}", s.handleDeleteCard).Methods(http.MethodDelete)
	api.HandleFunc("/cards/{cardId}/move", s.handleMoveCard).Methods(http.MethodPut)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}
