package instructor

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spinacademy/lessons-api/internal/pkg/response"
	"github.com/spinacademy/lessons-api/internal/pkg/validator"
)

const maxPhotoSize = 10 << 20 // 10 MB

// Handler handles instructor HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates instructor handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /instructors?date=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	instructors, err := h.svc.List(r.Context(), date)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, instructors)
}

// Get handles GET /instructors/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor ID")
		return
	}

	ins, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Instructor not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ins)
}

// Create handles POST /instructors (admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	ins, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, ins)
}

// UploadPhoto handles POST /instructors/{id}/photo (admin)
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor ID")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Missing photo file")
		return
	}
	defer file.Close()

	url, err := h.svc.UploadPhoto(r.Context(), id, file)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Instructor not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"photo_url": url})
}

// ListWindows handles GET /instructors/{id}/windows
func (h *Handler) ListWindows(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor ID")
		return
	}

	windows, err := h.svc.ListWindows(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Instructor not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, windows)
}

// CreateWindow handles POST /instructors/{id}/windows (admin)
func (h *Handler) CreateWindow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor ID")
		return
	}

	var req WindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	window, err := h.svc.CreateWindow(r.Context(), id, &req)
	if err != nil {
		h.writeWindowError(w, err)
		return
	}

	response.Created(w, window)
}

// UpdateWindow handles PUT /instructors/{id}/windows/{windowID} (admin)
func (h *Handler) UpdateWindow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor ID")
		return
	}
	windowID, err := uuid.Parse(chi.URLParam(r, "windowID"))
	if err != nil {
		response.BadRequest(w, "Invalid window ID")
		return
	}

	var req WindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	window, err := h.svc.UpdateWindow(r.Context(), id, windowID, &req)
	if err != nil {
		h.writeWindowError(w, err)
		return
	}

	response.OK(w, window)
}

// DeleteWindow handles DELETE /instructors/{id}/windows/{windowID} (admin)
func (h *Handler) DeleteWindow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor ID")
		return
	}
	windowID, err := uuid.Parse(chi.URLParam(r, "windowID"))
	if err != nil {
		response.BadRequest(w, "Invalid window ID")
		return
	}

	if err := h.svc.DeleteWindow(r.Context(), id, windowID); err != nil {
		h.writeWindowError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeWindowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Instructor not found")
	case errors.Is(err, ErrWindowNotFound):
		response.NotFound(w, "Window not found")
	case errors.Is(err, ErrInvalidWindow):
		response.BadRequest(w, "Window end must be after start")
	case errors.Is(err, ErrWindowOverlap):
		response.Conflict(w, "WINDOW_OVERLAP", "Window overlaps an existing active window")
	default:
		response.InternalError(w)
	}
}
