package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/floorida/backend/api/transport"
	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/pkg/floorcalc"
	"github.com/floorida/backend/pkg/httpcontext"
	teamUC "github.com/floorida/backend/usecase/team"
)

type TeamHandler struct {
	baseHandler
	uc *teamUC.UseCase
}

func NewTeamHandler(uc *teamUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a team with a join code
// @Tags teams
// @Router /api/v1/teams [post]
func (h *TeamHandler) CreateTeam(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TeamCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	team, err := h.uc.CreateTeam(stdCtx, userID, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, team)
}

// @Summary Join a team by invite code
// @Tags teams
// @Router /api/v1/teams/join [post]
func (h *TeamHandler) JoinTeam(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TeamJoinRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.JoinCode == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	team, err := h.uc.JoinTeam(stdCtx, userID, req.JoinCode)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, team)
}

// boardPage is a paginated slice of the team board.
type boardPage struct {
	TeamLevel  int                `json:"teamLevel"`
	Floors     []domain.TeamFloor `json:"floors"`
	TotalPages int                `json:"totalPages"`
	PageIndex  int                `json:"pageIndex"`
}

// @Summary List team floors with the authoritative team level
// @Tags teams
// @Router /api/v1/teams/{id}/floors [get]
func (h *TeamHandler) GetFloors(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	teamID, _ := ctx.UserValue("id").(string)
	if teamID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing team id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, err := h.uc.Board(stdCtx, teamID, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	pageIndex := parseInt(string(ctx.QueryArgs().Peek("page")), 0)
	pageSize := parseInt(string(ctx.QueryArgs().Peek("size")), 20)
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageSize < 1 {
		pageSize = 20
	}

	page := floorcalc.Paginate(board.Floors, pageIndex, pageSize)
	h.respondSuccess(ctx, http.StatusOK, boardPage{
		TeamLevel:  board.TeamLevel,
		Floors:     page.Items,
		TotalPages: page.TotalPages,
		PageIndex:  page.PageIndex,
	})
}

// @Summary Add a floor to the team board
// @Tags teams
// @Router /api/v1/teams/{id}/floors [post]
func (h *TeamHandler) CreateFloor(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	teamID, _ := ctx.UserValue("id").(string)
	if teamID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing team id", nil))
		return
	}

	var req transport.FloorCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	floor := &domain.TeamFloor{
		TeamID:  teamID,
		Title:   req.Title,
		DueDate: req.DueDate,
	}
	for _, assignee := range req.Assignees {
		floor.Assignees = append(floor.Assignees, domain.Assignee{UserID: assignee})
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateFloor(stdCtx, userID, floor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Complete a team floor
// @Tags teams
// @Router /api/v1/team-floors/{id}/complete [post]
func (h *TeamHandler) CompleteFloor(ctx *fasthttp.RequestCtx) {
	h.toggleFloor(ctx, true)
}

// @Summary Cancel a team floor completion
// @Tags teams
// @Router /api/v1/team-floors/{id}/cancel [post]
func (h *TeamHandler) CancelFloor(ctx *fasthttp.RequestCtx) {
	h.toggleFloor(ctx, false)
}

func (h *TeamHandler) toggleFloor(ctx *fasthttp.RequestCtx, complete bool) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	floorID, _ := ctx.UserValue("id").(string)
	if floorID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing floor id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		result floorcalc.CompletionResult
		err    error
	)
	if complete {
		result, err = h.uc.CompleteFloor(stdCtx, userID, floorID)
	} else {
		result, err = h.uc.CancelFloor(stdCtx, userID, floorID)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}
