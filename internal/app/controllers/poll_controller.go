package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/app/services"
	"github.com/ykaya/deptportal/internal/middleware"
	"github.com/ykaya/deptportal/internal/pkg/helpers"
)

// PollController handles the poll lifecycle and voting
type PollController struct {
	pollService services.PollService
}

// NewPollController creates a new PollController
func NewPollController(pollService services.PollService) *PollController {
	return &PollController{
		pollService: pollService,
	}
}

// CreatePoll opens a new poll
// @Summary Create a poll
// @Description Creates an active poll with 2 to 10 options. Admin or super admin only.
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePollRequest true "Poll question and options"
// @Success 201 {object} dto.APIResponse{data=dto.PollResponse} "Poll created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /polls [post]
func (c *PollController) CreatePoll(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreatePollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid poll data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	poll, err := c.pollService.CreatePoll(ctx, actor, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewPollResponse(poll)))
}

// GetPoll retrieves one poll snapshot
// @Summary Get a poll
// @Description Retrieves a poll with its current per-option counts and percentages.
// @Tags polls
// @Accept json
// @Produce json
// @Param id path int true "Poll ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PollResponse} "Poll retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid poll ID"
// @Failure 404 {object} dto.ErrorResponse "Poll not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /polls/{id} [get]
func (c *PollController) GetPoll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	poll, err := c.pollService.GetPoll(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPollResponse(poll)))
}

// ListPolls lists polls
// @Summary List polls
// @Description Retrieves polls newest first, optionally filtered by lifecycle state.
// @Tags polls
// @Accept json
// @Produce json
// @Param status query string false "Poll status" Enums(ACTIVE, CLOSED)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PollListResponse} "Polls retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /polls [get]
func (c *PollController) ListPolls(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var status *models.PollStatus
	if statusStr := ctx.Query("status"); statusStr != "" {
		s := models.PollStatus(statusStr)
		status = &s
	}

	polls, total, err := c.pollService.ListPolls(ctx, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.PollResponse, 0, len(polls))
	for i := range polls {
		responses = append(responses, dto.NewPollResponse(&polls[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PollListResponse{
		Polls:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}))
}

// Vote records the caller's ballot
// @Summary Vote in a poll
// @Description Records one ballot for the caller. Each account votes once per poll; votes cannot be changed.
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID" Format(int64) minimum(1)
// @Param request body dto.VoteRequest true "Chosen option"
// @Success 200 {object} dto.APIResponse{data=dto.PollResponse} "Vote recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account not approved"
// @Failure 404 {object} dto.ErrorResponse "Poll not found"
// @Failure 409 {object} dto.ErrorResponse "Already voted or poll closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /polls/{id}/vote [post]
func (c *PollController) Vote(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vote data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	poll, err := c.pollService.Vote(ctx, actor, id, req.OptionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPollResponse(poll)))
}

// ClosePoll ends an active poll
// @Summary Close a poll
// @Description Closes an active poll; its counts freeze and it never reopens. Admin or super admin only.
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PollResponse} "Poll closed"
// @Failure 400 {object} dto.ErrorResponse "Invalid poll ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Poll not found"
// @Failure 409 {object} dto.ErrorResponse "Poll already closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /polls/{id}/close [post]
func (c *PollController) ClosePoll(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	poll, err := c.pollService.ClosePoll(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPollResponse(poll)))
}
