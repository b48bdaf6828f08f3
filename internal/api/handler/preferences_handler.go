package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"cm_sheet/internal/api/middleware"
	"cm_sheet/internal/app/service"
	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type PreferencesService interface {
	Get(ctx context.Context, userID string) (model.Preferences, error)
	Update(ctx context.Context, userID string, req service.UpdatePreferencesRequest) (model.Preferences, error)
}

type PreferencesHandler struct {
	prefsService PreferencesService
}

func NewPreferencesHandler(ps PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefsService: ps}
}

func (h *PreferencesHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.get)
	r.Put("/", h.update)
}

func (h *PreferencesHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	prefs, err := h.prefsService.Get(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, prefs)
}

func (h *PreferencesHandler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	var req service.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	prefs, err := h.prefsService.Update(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, prefs)
}
