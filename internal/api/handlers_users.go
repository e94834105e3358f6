package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Update(r.Context(), id, req.Name, req.Email)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := s.users.GetAll(r.Context())
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
