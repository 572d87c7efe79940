package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantTarget error
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest, service.ErrInvalidDataProvided},
		{service.ErrInvalidOrExpiredToken, http.StatusBadRequest, service.ErrInvalidOrExpiredToken},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, service.ErrInvalidCredentials},
		{service.ErrInvalidToken, http.StatusUnauthorized, service.ErrInvalidToken},
		{service.ErrExpiredToken, http.StatusUnauthorized, service.ErrExpiredToken},
		{service.ErrForbidden, http.StatusForbidden, service.ErrForbidden},
		{service.ErrUserNotFound, http.StatusNotFound, service.ErrUserNotFound},
		{service.ErrDuplicateUser, http.StatusConflict, service.ErrDuplicateUser},
		{fmt.Errorf("wrapped: %w", service.ErrDuplicateUser), http.StatusConflict, service.ErrDuplicateUser},
		{fmt.Errorf("user search failed: %w", store.ErrExecutingQuery), http.StatusInternalServerError, nil},
		{errors.New("boom"), http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, target := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}
