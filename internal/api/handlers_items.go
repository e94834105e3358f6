package api

import (
	"net/http"

	"shareit/internal/models"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) createItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createItemRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.Create(r.Context(), &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     userID,
		RequestID:   req.RequestID,
	})
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// getItem обслуживает также /items/search (см. комментарий в getBooking).
func (s *Server) getItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("itemId") == "search" {
		s.searchItems(w, r)
		return
	}

	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	itemID, err := pathID(ps, "itemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	details, err := s.items.GetByID(r.Context(), itemID, userID)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	itemID, err := pathID(ps, "itemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateItemRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.Update(r.Context(), itemID, userID, req.Name, req.Description, req.Available)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) listOwnerItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.GetByOwner(r.Context(), userID)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) searchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.Search(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	itemID, err := pathID(ps, "itemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createCommentRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := s.items.AddComment(r.Context(), itemID, userID, req.Text)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
