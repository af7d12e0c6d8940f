package api

import (
	"net/http"

	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
)

type createCardBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// updateCardBody uses pointers so absent fields are left alone
type updateCardBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type moveCardBody struct {
	DestinationColumnID int `json:"destinationColumnId"`
	DestinationIndex    int `json:"destinationIndex"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	columnID, err := pathID(r, "columnId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cards, err := s.app.CardService.ListCards(r.Context(), columnID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	columnID, err := pathID(r, "columnId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body createCardBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	card, err := s.app.CardService.CreateCard(r.Context(), cardservice.CreateCardRequest{
		ColumnID:    columnID,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	card, err := s.app.CardService.GetCard(r.Context(), cardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body updateCardBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	card, err := s.app.CardService.UpdateCard(r.Context(), cardservice.UpdateCardRequest{
		CardID:      cardID,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.app.CardService.DeleteCard(r.Context(), cardID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMoveCard places the card at destinationIndex of destinationColumnId.
// 204 on success, including moves that change nothing.
func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body moveCardBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	err = s.app.CardService.MoveCard(r.Context(), cardservice.MoveCardRequest{
		CardID:              cardID,
		DestinationColumnID: body.DestinationColumnID,
		DestinationIndex:    body.DestinationIndex,
	})
	s.metrics.observeMove(err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
