// AngelaMos | 2026
// handler.go

package contact

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/contacts-api/internal/core"
	"github.com/carterperez-dev/templates/contacts-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts the contact resource on r. Every route runs behind
// the given middlewares, the first of which must authenticate.
func (h *Handler) RegisterRoutes(r chi.Router, middlewares ...func(http.Handler) http.Handler) {
	r.Route("/contacts", func(r chi.Router) {
		r.Use(middlewares...)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{contactID}", h.Get)
		r.Put("/{contactID}", h.Update)
		r.Delete("/{contactID}", h.Delete)
		r.Patch("/{contactID}/favorite", h.UpdateFavorite)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	params := ListParams{
		Page:  queryInt(r, "page", DefaultPage),
		Limit: queryInt(r, "limit", DefaultLimit),
	}

	contacts, err := h.service.List(r.Context(), ownerID, params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToResponseList(contacts))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	c, err := h.service.Get(r.Context(), ownerID, chi.URLParam(r, "contactID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToResponse(c))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	c, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToResponse(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var req UpdateRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	c, err := h.service.Update(r.Context(), ownerID, chi.URLParam(r, "contactID"), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToResponse(c))
}

func (h *Handler) UpdateFavorite(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var req FavoriteRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	c, err := h.service.UpdateFavorite(
		r.Context(),
		ownerID,
		chi.URLParam(r, "contactID"),
		*req.Favorite,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), ownerID, chi.URLParam(r, "contactID")); err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "Contact deleted")
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
