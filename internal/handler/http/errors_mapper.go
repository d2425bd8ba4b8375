package http

import (
	"errors"
	"net/http"

	"github.com/skyfare/bookingd/internal/service"
	"github.com/skyfare/bookingd/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrNoBookingsProvided:  http.StatusBadRequest,
	service.ErrUserAlreadyExists:   http.StatusConflict,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrTokenInvalid:        http.StatusUnauthorized,
	service.ErrTokenExpired:        http.StatusUnauthorized,
	service.ErrSubjectMismatch:     http.StatusForbidden,
	service.ErrForbidden:           http.StatusForbidden,
	service.ErrUserNotFound:        http.StatusNotFound,
	service.ErrBookingConflict:     http.StatusConflict,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
