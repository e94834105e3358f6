package api

import (
	"net/http"
	"strconv"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createBookingRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.Create(r.Context(), req.ItemID, req.Start, req.End, userID)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) decideBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(ps, "bookingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.bookings.Decide(r.Context(), bookingID, approved, userID)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	metrics.IncBookingDecision(outcome)
	writeJSON(w, http.StatusOK, booking)
}

// getBooking обслуживает также /bookings/owner и /bookings/export, так как
// роутер не разрешает статический сегмент рядом с :bookingId.
func (s *Server) getBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("bookingId") {
	case "owner":
		s.listOwnerBookings(w, r)
		return
	case "export":
		s.exportBookings(w, r)
		return
	}

	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(ps, "bookingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) listBookerBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.listBookings(w, r, models.ViewpointBooker)
}

func (s *Server) listOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, models.ViewpointOwner)
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request, viewpoint models.Viewpoint) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := models.ParseStateFilter(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, size, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var bookings []models.Booking
	if viewpoint == models.ViewpointOwner {
		bookings, err = s.bookings.ListForOwner(r.Context(), userID, state, from, size)
	} else {
		bookings, err = s.bookings.ListForBooker(r.Context(), userID, state, from, size)
	}
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) exportBookings(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromHeader(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, err := parseTimeParam(r, "start", time.Now().UTC().AddDate(0, -1, 0))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseTimeParam(r, "end", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := s.exporter.BookingsReport(r.Context(), start, end)
	if err != nil {
		writeAppError(w, &s.logger, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := file.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("failed to stream report")
	}
}

func parseTimeParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
