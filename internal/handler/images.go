package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"imageservice/internal/api"
	"imageservice/internal/model"
	"imageservice/internal/service"
)

const defaultPageSize = 10

// UploadImages handles POST /api/v1/images -- multipart upload of 1..N files
// for a single parent entity.
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Config.MaxUploadBytes); err != nil {
		api.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	imageType, err := model.ParseImageType(r.FormValue("imageType"))
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	parentID := r.FormValue("parentEntityId")
	if _, err := uuid.Parse(parentID); err != nil {
		api.BadRequest(w, "parentEntityId must be a valid UUID")
		return
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		api.BadRequest(w, "missing required field: file")
		return
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			api.BadRequest(w, "unable to open uploaded file "+fh.Filename)
			return
		}
		defer f.Close()

		uploads = append(uploads, service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	asset, err := h.Service.Save(r.Context(), imageType, parentID, uploads)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, api.SuccessResponse(asset))
}

// GetImageByID handles GET /api/v1/images/{image_id}.
func (h *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "image_id")
	if _, err := uuid.Parse(id); err != nil {
		api.BadRequest(w, "image id must be a valid UUID")
		return
	}

	asset, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(asset))
}

// GetImageByURL handles GET /api/v1/images?url=...
func (h *Handler) GetImageByURL(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		api.BadRequest(w, "missing required query parameter: url")
		return
	}

	asset, err := h.Service.GetByURL(r.Context(), url)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(asset))
}

// GetImagesByParent handles GET /api/v1/images/parent/{parent_id}.
func (h *Handler) GetImagesByParent(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "parent_id")
	if _, err := uuid.Parse(parentID); err != nil {
		api.BadRequest(w, "parent id must be a valid UUID")
		return
	}

	asset, err := h.Service.GetByParent(r.Context(), parentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(asset))
}

// GetImagesByParents handles GET /api/v1/images/parents?ids=...&page=&size=.
// ids may be repeated or comma-separated; order is preserved.
func (h *Handler) GetImagesByParents(w http.ResponseWriter, r *http.Request) {
	var parentIDs []string
	for _, raw := range r.URL.Query()["ids"] {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, err := uuid.Parse(id); err != nil {
				api.BadRequest(w, "ids must be valid UUIDs")
				return
			}
			parentIDs = append(parentIDs, id)
		}
	}
	if len(parentIDs) == 0 {
		api.BadRequest(w, "missing required query parameter: ids")
		return
	}

	page, ok := queryInt(r, "page", 0)
	if !ok || page < 0 {
		api.BadRequest(w, "page must be a non-negative integer")
		return
	}
	size, ok := queryInt(r, "size", defaultPageSize)
	if !ok || size <= 0 || size > 100 {
		api.BadRequest(w, "size must be between 1 and 100")
		return
	}

	result, err := h.Service.GetManyByParent(r.Context(), parentIDs, page, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(result))
}

// DeleteImageByID handles DELETE /api/v1/images/{image_id}.
func (h *Handler) DeleteImageByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "image_id")
	if _, err := uuid.Parse(id); err != nil {
		api.BadRequest(w, "image id must be a valid UUID")
		return
	}

	if err := h.Service.DeleteByID(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteImagesByParent handles DELETE /api/v1/images/parent/{parent_id}.
// Deleting a parent with no images is a success, so the call is idempotent.
func (h *Handler) DeleteImagesByParent(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "parent_id")
	if _, err := uuid.Parse(parentID); err != nil {
		api.BadRequest(w, "parent id must be a valid UUID")
		return
	}

	result, err := h.Service.DeleteByParent(r.Context(), parentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(result))
}

// GetStats handles GET /api/v1/images/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.Count(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(map[string]int{"count": count}))
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, defaultValue int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
