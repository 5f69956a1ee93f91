package handler

import (
	"context"
	"errors"
	"net/http"

	"imageservice/internal/api"
	"imageservice/internal/config"
	"imageservice/internal/service"
	"imageservice/internal/storage"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	Service *service.Service
	Store   storage.Storage
	Config  *config.Config
}

// writeServiceError maps coordinator errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoIcons):
		api.NotFound(w, err.Error())
	case errors.Is(err, service.ErrMixedTypes):
		api.Conflict(w, err.Error())
	case errors.Is(err, service.ErrUpload), errors.Is(err, context.DeadlineExceeded):
		api.InternalError(w, err.Error())
	default:
		api.Unavailable(w, err.Error())
	}
}
