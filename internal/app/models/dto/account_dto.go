package dto

import (
	"time"

	"github.com/ykaya/deptportal/internal/app/models"
)

// AccountResponse is the public representation of an account
type AccountResponse struct {
	ID                int64     `json:"id" example:"1"`
	Email             string    `json:"email" example:"user@dept.edu"`
	FirstName         string    `json:"firstName" example:"John"`
	LastName          string    `json:"lastName" example:"Doe"`
	Role              string    `json:"role" example:"STUDENT"`
	ApprovalStatus    string    `json:"approvalStatus" example:"PENDING"`
	Level             string    `json:"level" example:"300"`
	ProfileCompletion int       `json:"profileCompletion" example:"75"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewAccountResponse maps a model account to its response shape
func NewAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:                account.ID,
		Email:             account.Email,
		FirstName:         account.FirstName,
		LastName:          account.LastName,
		Role:              string(account.Role),
		ApprovalStatus:    string(account.ApprovalStatus),
		Level:             account.Level,
		ProfileCompletion: account.ProfileCompletion,
		CreatedAt:         account.CreatedAt,
	}
}

// AccountListResponse is a paginated list of accounts
type AccountListResponse struct {
	Accounts       []AccountResponse `json:"accounts"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// SetApprovalStatusRequest is the payload for PUT /accounts/{id}/approval
type SetApprovalStatusRequest struct {
	Status string `json:"status" binding:"required,approvalstatus" example:"APPROVED"`
}

// SetRoleRequest is the payload for PUT /accounts/{id}/role
type SetRoleRequest struct {
	Role string `json:"role" binding:"required,accountrole" example:"ADMIN"`
}

// UpdateProfileRequest is the payload for profile self-service updates
type UpdateProfileRequest struct {
	FirstName         *string `json:"firstName,omitempty" binding:"omitempty,min=1"`
	LastName          *string `json:"lastName,omitempty" binding:"omitempty,min=1"`
	Level             *string `json:"level,omitempty" binding:"omitempty,max=32"`
	ProfileCompletion *int    `json:"profileCompletion,omitempty" binding:"omitempty,min=0,max=100"`
}
