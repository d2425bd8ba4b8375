package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/utils"
	"github.com/skyfare/bookingd/models"
)

// credentialsRequest is the JSON body of signup and login calls.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// respondError maps err to an HTTP status and writes the error envelope.
// The response body carries msg, not err itself, so internal detail never
// leaks to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.FromRequest(r).Err(err).Msg(msg)
	utils.WriteJSON(w, models.ErrorResponse{Error: msg}, statusFromError(err))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	user, err := h.services.BookingService.Signup(ctx, creds.Username, creds.Password)
	if err != nil {
		respondError(w, r, err, "signup failed")
		return
	}

	utils.WriteJSON(w, models.DataResponse{Data: user}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	user, token, err := h.services.BookingService.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		respondError(w, r, err, "invalid login/password")
		return
	}

	log.Debug().Str("username", user.Username).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.DataResponse{
		Data: models.LoginResponse{User: user, Token: token.SignedString},
	}, http.StatusOK)
}
