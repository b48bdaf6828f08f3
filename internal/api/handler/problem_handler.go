package handler

import (
	"context"
	"net/http"

	"cm_sheet/internal/api/middleware"
	"cm_sheet/internal/common"
	"cm_sheet/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type BoardService interface {
	Problems() []model.Problem
	Board(ctx context.Context, userID string) ([]model.Group, error)
	Group(ctx context.Context, userID, slug string) (*model.Group, error)
}

// ProblemHandler serves the enriched list and the grouped progress board.
type ProblemHandler struct {
	boardService BoardService
}

func NewProblemHandler(bs BoardService) *ProblemHandler {
	return &ProblemHandler{boardService: bs}
}

// RegisterRoutes mounts GET /problems publicly and the board behind auth.
func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/problems", h.listProblems)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/board", h.board)
		authed.Get("/board/{groupSlug}", h.group)
	})
}

func (h *ProblemHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	problems := h.boardService.Problems()
	type problemsResponse struct {
		Problems []model.Problem `json:"problems"`
		Total    int             `json:"total"`
	}
	common.RespondWithJSON(w, http.StatusOK, problemsResponse{Problems: problems, Total: len(problems)})
}

func (h *ProblemHandler) board(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	groups, err := h.boardService.Board(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	type boardResponse struct {
		Groups []model.Group `json:"groups"`
	}
	common.RespondWithJSON(w, http.StatusOK, boardResponse{Groups: groups})
}

func (h *ProblemHandler) group(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	group, err := h.boardService.Group(r.Context(), userID, chi.URLParam(r, "groupSlug"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, group)
}
