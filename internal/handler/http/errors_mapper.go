package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrInvalidOrExpiredToken: http.StatusBadRequest,
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrInvalidToken:          http.StatusUnauthorized,
	service.ErrExpiredToken:          http.StatusUnauthorized,
	service.ErrForbidden:             http.StatusForbidden,
	service.ErrUserNotFound:          http.StatusNotFound,
	service.ErrDuplicateUser:         http.StatusConflict,
}

// statusFromError returns the HTTP status for err together with the domain
// error it matched. Unknown errors map to 500 and a nil target.
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError answers with the status mapped from err. Domain errors expose
// their own message; anything else is logged and answered with a generic
// body so that store and hashing details never leave the service.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, target := statusFromError(err)
	log := logger.FromRequest(r)

	if target == nil {
		log.Err(err).Msg("unexpected error")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Info().Err(err).Int("status", status).Send()
	http.Error(w, target.Error(), status)
}
