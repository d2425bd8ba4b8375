package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/service"
	"github.com/skyfare/bookingd/internal/utils"
	"github.com/skyfare/bookingd/models"
)

// bookRequest is the JSON body of a booking call: one or more opaque
// flight payloads to append to the user's record.
type bookRequest struct {
	Flights []models.FlightBooking `json:"flights"`
}

func (h *Handler) book(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	target := chi.URLParam(r, "username")

	subject, ok := utils.GetSubjectFromContext(ctx)
	if !ok {
		// The auth middleware always stores the subject; a missing value
		// means the route is wired without it.
		log.Error().Msg("no authenticated subject in request context")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	var body bookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.BookingService.BookFor(ctx, subject, target, body.Flights)
	if err != nil {
		respondError(w, r, err, bookFailureMessage(err))
		return
	}

	log.Debug().Str("username", target).Int("flights", len(updated.Flights)).Msg("bookings recorded")

	utils.WriteJSON(w, models.DataResponse{Data: updated}, http.StatusAccepted)
}

func (h *Handler) booked(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	target := chi.URLParam(r, "username")

	subject, ok := utils.GetSubjectFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated subject in request context")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	flights, err := h.services.BookingService.BookingsFor(ctx, subject, target)
	if err != nil {
		respondError(w, r, err, bookFailureMessage(err))
		return
	}

	utils.WriteJSON(w, models.DataResponse{Data: flights}, http.StatusOK)
}

// bookFailureMessage picks the client-facing description for a failed
// booking operation without leaking storage detail.
func bookFailureMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrForbidden) || errors.Is(err, service.ErrSubjectMismatch):
		return "access to another user's bookings is forbidden"
	case errors.Is(err, service.ErrNoBookingsProvided):
		return "no flights provided"
	case errors.Is(err, service.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, service.ErrBookingConflict):
		return "booking conflict, please retry"
	default:
		return "booking operation failed"
	}
}
