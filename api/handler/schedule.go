package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/floorida/backend/api/transport"
	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/pkg/httpcontext"
	scheduleUC "github.com/floorida/backend/usecase/schedule"
)

type ScheduleHandler struct {
	baseHandler
	uc *scheduleUC.UseCase
}

func NewScheduleHandler(uc *scheduleUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Month view: calendar grid, schedules with planned days, floor level
// @Tags schedules
// @Router /api/v1/schedules [get]
func (h *ScheduleHandler) GetMonth(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	now := time.Now()
	year := parseInt(string(ctx.QueryArgs().Peek("year")), now.Year())
	monthNum := parseInt(string(ctx.QueryArgs().Peek("month")), int(now.Month()))
	if monthNum < 1 || monthNum > 12 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "month must be 1-12", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.MonthView(stdCtx, userID, year, time.Month(monthNum))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Create schedule
// @Tags schedules
// @Router /api/v1/schedules [post]
func (h *ScheduleHandler) CreateSchedule(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	schedule, ok := h.parseSchedule(ctx, userID)
	if !ok {
		return
	}
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateSchedule(stdCtx, schedule)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update schedule
// @Tags schedules
// @Router /api/v1/schedules/{id} [put]
func (h *ScheduleHandler) UpdateSchedule(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	schedule, ok := h.parseSchedule(ctx, userID)
	if !ok {
		return
	}
	if id, ok := ctx.UserValue("id").(string); ok && id != "" {
		schedule.ID = id
	}
	if schedule.ID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing schedule id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateSchedule(stdCtx, schedule)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete schedule
// @Tags schedules
// @Router /api/v1/schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing schedule id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteSchedule(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Toggle a subtask's completion
// @Tags schedules
// @Router /api/v1/schedules/{id}/subtasks/{subID}/toggle [post]
func (h *ScheduleHandler) ToggleSubtask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	subID, _ := ctx.UserValue("subID").(string)
	if subID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing subtask id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.ToggleSubtask(stdCtx, userID, subID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

func (h *ScheduleHandler) parseSchedule(ctx *fasthttp.RequestCtx, userID string) (*domain.Schedule, bool) {
	var req transport.ScheduleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}

	schedule := &domain.Schedule{
		ID:        req.ID,
		UserID:    userID,
		Title:     req.Title,
		Color:     req.Color,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	for _, sub := range req.Subtasks {
		schedule.Subtasks = append(schedule.Subtasks, domain.Subtask{
			ID:            sub.ID,
			ScheduleID:    schedule.ID,
			ScheduledDate: sub.ScheduledDate,
			Title:         sub.Title,
		})
	}
	return schedule, true
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
