package api

import (
	"net/http"

	columnservice "github.com/thenoetrevino/lanes/internal/services/column"
)

func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	columns, err := s.app.ColumnService.ListColumns(r.Context(), boardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, columns)
}

func (s *Server) handleCreateColumn(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body titleBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	column, err := s.app.ColumnService.CreateColumn(r.Context(), columnservice.CreateColumnRequest{
		BoardID: boardID,
		Title:   body.Title,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, column)
}

func (s *Server) handleRenameColumn(w http.ResponseWriter, r *http.Request) {
	columnID, err := pathID(r, "columnId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body titleBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.app.ColumnService.RenameColumn(r.Context(), columnID, body.Title); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteColumn removes the column and every card in it
func (s *Server) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	columnID, err := pathID(r, "columnId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.app.ColumnService.DeleteColumn(r.Context(), columnID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
