// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/contacts-api/internal/avatar"
	"github.com/carterperez-dev/templates/contacts-api/internal/core"
	"github.com/carterperez-dev/templates/contacts-api/internal/middleware"
)

const avatarField = "avatar"

type Handler struct {
	service        *Service
	validator      *validator.Validate
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		validator:      core.NewValidator(),
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts profile updates on the /users subrouter.
// uploadLimiter runs after authentication on the avatar route; nil disables
// it.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	uploadLimiter func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		if uploadLimiter != nil {
			r.With(uploadLimiter).Patch("/avatars", h.UpdateAvatar)
		} else {
			r.Patch("/avatars", h.UpdateAvatar)
		}
		r.Patch("/subscription", h.UpdateSubscription)
	})
}

func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateSubscriptionRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	u, err := h.service.UpdateSubscription(r.Context(), userID, req.Subscription)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(u))
}

func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			core.JSONError(w, avatar.ErrFileTooLarge)
			return
		}
		core.JSONError(w, avatar.ErrInvalidFile)
		return
	}
	defer func() {
		//nolint:errcheck // multipart temp files are best-effort cleanup
		_ = r.MultipartForm.RemoveAll()
	}()

	file, _, err := r.FormFile(avatarField)
	if err != nil {
		core.JSONError(w, avatar.ErrInvalidFile)
		return
	}
	defer file.Close() //nolint:errcheck // read-only upload

	url, err := h.service.ReplaceAvatar(r.Context(), userID, file)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, AvatarResponse{AvatarURL: url})
}
