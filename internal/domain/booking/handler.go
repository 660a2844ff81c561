package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spinacademy/lessons-api/internal/domain/pricing"
	"github.com/spinacademy/lessons-api/internal/domain/user"
	"github.com/spinacademy/lessons-api/internal/middleware"
	"github.com/spinacademy/lessons-api/internal/pkg/response"
	"github.com/spinacademy/lessons-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates booking handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// OpenSlots handles GET /bookings/slots?instructor_id=...&date=YYYY-MM-DD&hours=N
func (h *Handler) OpenSlots(w http.ResponseWriter, r *http.Request) {
	instructorID, err := uuid.Parse(r.URL.Query().Get("instructor_id"))
	if err != nil {
		response.BadRequest(w, "Invalid instructor_id")
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}

	hours := 1
	if raw := r.URL.Query().Get("hours"); raw != "" {
		hours, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid hours")
			return
		}
	}

	slots, err := h.svc.OpenSlots(r.Context(), instructorID, date, hours)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, slots)
}

// Reserve handles POST /bookings
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	booking, err := h.svc.Reserve(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, booking)
}

// List handles GET /bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, bookings)
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	isAdmin := middleware.GetRole(r.Context()) == string(user.RoleAdmin)
	booking, err := h.svc.Get(r.Context(), id, middleware.GetUserID(r.Context()), isAdmin)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, booking)
}

// Cancel handles POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	if err := h.svc.Cancel(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		response.Conflict(w, "SLOT_UNAVAILABLE", "Requested slot is not available")
	case errors.Is(err, ErrInvalidStartTime):
		response.Error(w, http.StatusBadRequest, "INVALID_START_TIME", "Start time must sit on the hour grid inside the instructor's window")
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrNotCancellable):
		response.Conflict(w, "NOT_CANCELLABLE", "Booking can no longer be cancelled")
	case errors.Is(err, ErrStoreUnavailable):
		response.ServiceUnavailable(w, "STORE_UNAVAILABLE", "Booking store is temporarily unavailable")
	case errors.Is(err, pricing.ErrInvalidTier),
		errors.Is(err, pricing.ErrPromoNotFound),
		errors.Is(err, pricing.ErrPromoExpired),
		errors.Is(err, pricing.ErrPromoExhausted):
		pricing.WriteError(w, err)
	default:
		response.InternalError(w)
	}
}
