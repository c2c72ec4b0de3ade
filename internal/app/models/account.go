package models

import (
	"strconv"
	"time"
)

// Role defines the authority tier of an account
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleAlumnus    Role = "ALUMNUS"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsValid checks whether the role is one of the known tiers
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAlumnus, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdministrative reports whether the role carries moderation capability
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ApprovalStatus defines the admission/moderation lifecycle state shared by
// accounts and posts
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// IsValid checks whether the status is one of the known states
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
// Pending may be resolved either way; approved and rejected may be
// re-classified into each other. Nothing transitions back into pending.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	if next == ApprovalPending {
		return false
	}
	switch s {
	case ApprovalPending:
		return next == ApprovalApproved || next == ApprovalRejected
	case ApprovalApproved:
		return next == ApprovalRejected
	case ApprovalRejected:
		return next == ApprovalApproved
	}
	return false
}

// Account defines the account model based on the 'accounts' table
type Account struct {
	ID                int64          `json:"id" db:"id" example:"1"`
	Email             string         `json:"email" db:"email" example:"user@dept.edu"`
	Password          string         `json:"-" db:"password"` // Hashed password, excluded from JSON
	FirstName         string         `json:"firstName" db:"first_name" example:"John"`
	LastName          string         `json:"lastName" db:"last_name" example:"Doe"`
	Role              Role           `json:"role" db:"role" example:"STUDENT"`
	ApprovalStatus    ApprovalStatus `json:"approvalStatus" db:"approval_status" example:"PENDING"`
	Level             string         `json:"level" db:"level" example:"300"` // Academic level, free-form ("300", "Graduated/Alumni")
	ProfileCompletion int            `json:"profileCompletion" db:"profile_completion" example:"75"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time      `json:"updatedAt" db:"updated_at"`
}

// Actor is the authenticated account performing an operation, resolved from
// the session layer. The core authorizes actors, it never authenticates them.
type Actor struct {
	AccountID int64
	Role      Role
}

// NumericLevel parses the academic level as an integer. Non-numeric levels
// such as "Graduated/Alumni" parse to 0.
func (a *Account) NumericLevel() int {
	n, err := strconv.Atoi(a.Level)
	if err != nil {
		return 0
	}
	return n
}

// EngagementScore converts the account's counters into the ranking score:
// profileCompletion*10 + numericLevel*5. A coarse proxy kept as observed;
// replace the weighting here if the product ever defines a real scheme.
func (a *Account) EngagementScore() int {
	return a.ProfileCompletion*10 + a.NumericLevel()*5
}
