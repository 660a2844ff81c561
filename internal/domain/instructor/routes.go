package instructor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns instructor routes
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/windows", h.ListWindows)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)

		r.Post("/", h.Create)
		r.Post("/{id}/photo", h.UploadPhoto)
		r.Post("/{id}/windows", h.CreateWindow)
		r.Put("/{id}/windows/{windowID}", h.UpdateWindow)
		r.Delete("/{id}/windows/{windowID}", h.DeleteWindow)
	})

	return r
}
