package pricing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spinacademy/lessons-api/internal/pkg/response"
	"github.com/spinacademy/lessons-api/internal/pkg/validator"
)

// Handler handles pricing HTTP requests
type Handler struct {
	resolver *Resolver
}

// NewHandler creates pricing handler
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// Tiers handles GET /pricing/tiers
func (h *Handler) Tiers(w http.ResponseWriter, r *http.Request) {
	response.OK(w, Tiers())
}

// Quote handles POST /pricing/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	quote, err := h.resolver.Resolve(r.Context(), req.Hours, req.PromoCode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, toQuoteResponse(quote))
}

// WriteError maps pricing errors to HTTP responses. Shared with the
// booking handler so both surfaces report promo failures identically.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTier):
		response.Error(w, http.StatusBadRequest, "INVALID_TIER", "Unknown pricing tier")
	case errors.Is(err, ErrPromoNotFound):
		response.UnprocessableEntity(w, "PROMO_NOT_FOUND", "Promo code not found")
	case errors.Is(err, ErrPromoExpired):
		response.UnprocessableEntity(w, "PROMO_EXPIRED", "Promo code is not currently valid")
	case errors.Is(err, ErrPromoExhausted):
		response.UnprocessableEntity(w, "PROMO_EXHAUSTED", "Promo code usage limit reached")
	default:
		response.InternalError(w)
	}
}
