package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) createRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createItemRequestRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.Create(r.Context(), userID, req.Description)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (s *Server) listOwnRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.GetOwn(r.Context(), userID)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// getRequest обслуживает также /requests/all (см. комментарий в getBooking).
func (s *Server) getRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("requestId") == "all" {
		s.listAllRequests(w, r)
		return
	}

	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requestID, err := pathID(ps, "requestId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.GetByID(r.Context(), requestID, userID)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, request)
}

func (s *Server) listAllRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, size, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.GetAll(r.Context(), userID, from, size)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}
