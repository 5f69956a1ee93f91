package handler

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"imageservice/internal/api"
	"imageservice/internal/storage"
)

// ListIcons handles GET /api/v1/images/icons.
func (h *Handler) ListIcons(w http.ResponseWriter, r *http.Request) {
	icons, err := h.Service.ListIcons(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(icons))
}

// ServeFile handles GET /files/* and streams a blob straight from storage.
// This is the delivery route behind the URLs the filesystem backend hands out.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		api.BadRequest(w, "missing file key")
		return
	}

	data, err := h.Store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.NotFound(w, "file not found")
			return
		}
		api.Unavailable(w, err.Error())
		return
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
