package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"cm_sheet/internal/api/middleware"
	"cm_sheet/internal/app/progress"
	"cm_sheet/internal/app/service"
	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ProgressService interface {
	ToggleManual(ctx context.Context, userID, title string) (*service.ToggleResponse, error)
	ManualSolved(ctx context.Context, userID string) (progress.SolvedSet, error)
}

type SyncService interface {
	Sync(ctx context.Context, userID string) error
	Status(ctx context.Context, userID string) (model.SyncStatus, error)
}

type ProgressHandler struct {
	progressService ProgressService
	syncService     SyncService
}

func NewProgressHandler(ps ProgressService, ss SyncService) *ProgressHandler {
	return &ProgressHandler{progressService: ps, syncService: ss}
}

func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/manual", h.listManual)
	r.Post("/manual/toggle", h.toggleManual)
	r.Get("/sync", h.syncStatus)
	r.Post("/sync", h.sync)
}

func (h *ProgressHandler) listManual(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	set, err := h.progressService.ManualSolved(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	type manualResponse struct {
		Titles []string `json:"titles"`
	}
	common.RespondWithJSON(w, http.StatusOK, manualResponse{Titles: set.Keys()})
}

func (h *ProgressHandler) toggleManual(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	var req service.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.progressService.ToggleManual(r.Context(), userID, req.Title)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// sync runs a judge sync inline and answers with the resulting status.
func (h *ProgressHandler) sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	if err := h.syncService.Sync(r.Context(), userID); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	h.syncStatus(w, r)
}

func (h *ProgressHandler) syncStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	status, err := h.syncService.Status(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, status)
}
