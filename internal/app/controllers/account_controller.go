package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/app/services"
	"github.com/ykaya/deptportal/internal/middleware"
	"github.com/ykaya/deptportal/internal/pkg/helpers"
)

// AccountController handles account administration and profile self-service
type AccountController struct {
	accountService services.AccountService
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService services.AccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID")
		errorDetail = errorDetail.WithDetails("ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListAccounts lists accounts by approval status
// @Summary List accounts by approval status
// @Description Retrieves accounts in the given admission state, ordered by registration time. Super admin only.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string true "Approval status" Enums(PENDING, APPROVED, REJECTED)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.AccountListResponse} "Accounts retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts [get]
func (c *AccountController) ListAccounts(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	status := models.ApprovalStatus(ctx.DefaultQuery("status", string(models.ApprovalPending)))
	page, size := helpers.ParsePaginationParams(ctx)

	accounts, total, err := c.accountService.ListAccountsByStatus(ctx, actor, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, dto.NewAccountResponse(&accounts[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AccountListResponse{
		Accounts:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}))
}

// SetApprovalStatus resolves an account's admission state
// @Summary Set account approval status
// @Description Approves, rejects, or re-classifies an account. Nothing moves back to pending. Super admin only.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID" Format(int64) minimum(1)
// @Param request body dto.SetApprovalStatusRequest true "New approval status"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid state transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{id}/approval [put]
func (c *AccountController) SetApprovalStatus(ctx *gin.Context) {
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

	var req dto.SetApprovalStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid approval data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	account, err := c.accountService.SetApprovalStatus(ctx, actor, id, models.ApprovalStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// SetRole reassigns an account's role
// @Summary Set account role
// @Description Changes an account's authority tier. The super_admin tier can be neither granted nor revoked. Super admin only.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID" Format(int64) minimum(1)
// @Param request body dto.SetRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid state transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{id}/role [put]
func (c *AccountController) SetRole(ctx *gin.Context) {
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

	var req dto.SetRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	account, err := c.accountService.SetRole(ctx, actor, id, models.Role(req.Role))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// GetProfile returns the caller's own account
// @Summary Get own profile
// @Description Retrieves the authenticated account, including its approval status.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile [get]
func (c *AccountController) GetProfile(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	account, err := c.accountService.GetAccount(ctx, actor.AccountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// UpdateProfile updates the caller's own profile fields
// @Summary Update own profile
// @Description Updates name, level, and profile completion. Only the provided fields change.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile [put]
func (c *AccountController) UpdateProfile(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	account, err := c.accountService.UpdateProfile(ctx, actor.AccountID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}
