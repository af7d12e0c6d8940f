package api

import (
	"net/http"

	boardservice "github.com/thenoetrevino/lanes/internal/services/board"
)

type createBoardBody struct {
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
}

type titleBody struct {
	Title string `json:"title"`
}

type exportResponse struct {
	Key string `json:"key"`
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.app.BoardService.ListBoards(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var body createBoardBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	board, err := s.app.BoardService.CreateBoard(r.Context(), boardservice.CreateBoardRequest{
		Title:   body.Title,
		Columns: body.Columns,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, board)
}

// handleGetBoard returns the board with its ordered columns and cards
func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := s.app.BoardService.GetSnapshot(r.Context(), boardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleRenameBoard(w http.ResponseWriter, r *http.Request) {
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
	if err := s.app.BoardService.RenameBoard(r.Context(), boardID, body.Title); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.app.BoardService.DeleteBoard(r.Context(), boardID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	key, err := s.app.BoardService.ExportBoard(r.Context(), boardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Key: key})
}
