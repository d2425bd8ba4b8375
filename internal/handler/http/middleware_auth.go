package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/service"
	"github.com/skyfare/bookingd/internal/utils"
	"github.com/skyfare/bookingd/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication on
// per-user routes.
//
// It inspects the incoming "Authorization" header, extracts the
// "Bearer "-prefixed token, and verifies it via
// [service.TokenService.Verify] against the {username} route parameter:
// the token's subject must be the very user whose resources the request
// addresses. On success the verified subject is stored in the request
// context under [utils.SubjectCtxKey] before delegating to the next handler.
//
// Rejections:
//   - 401 Unauthorized — missing header, non-Bearer scheme, invalid or
//     expired token.
//   - 403 Forbidden — a valid token presented for another user's resource
//     ([service.ErrSubjectMismatch]).
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSON(w, models.ErrorResponse{Error: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(ErrInvalidAuthorizationHeader).Send()
			utils.WriteJSON(w, models.ErrorResponse{Error: ErrInvalidAuthorizationHeader.Error()}, http.StatusUnauthorized)
			return
		}

		target := chi.URLParam(r, "username")

		token, err := h.services.TokenService.Verify(tokenString, target)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				log.Err(err).Msg("token expired")
				utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrTokenExpired.Error()}, http.StatusUnauthorized)
				return
			case errors.Is(err, service.ErrSubjectMismatch):
				log.Err(err).Str("target", target).Msg("token subject does not match requested user")
				utils.WriteJSON(w, models.ErrorResponse{Error: "access to another user's bookings is forbidden"}, http.StatusForbidden)
				return
			default:
				log.Err(err).Msg("invalid token")
				utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
				return
			}
		}

		// Store the verified subject in the context so downstream handlers
		// can authorize without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.SubjectCtxKey, token.Subject())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
