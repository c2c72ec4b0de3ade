package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ApprovalStatus
		to      ApprovalStatus
		allowed bool
	}{
		{"pending to approved", ApprovalPending, ApprovalApproved, true},
		{"pending to rejected", ApprovalPending, ApprovalRejected, true},
		{"approved to rejected", ApprovalApproved, ApprovalRejected, true},
		{"rejected to approved", ApprovalRejected, ApprovalApproved, true},
		{"approved back to pending", ApprovalApproved, ApprovalPending, false},
		{"rejected back to pending", ApprovalRejected, ApprovalPending, false},
		{"pending to pending", ApprovalPending, ApprovalPending, false},
		{"approved to approved", ApprovalApproved, ApprovalApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestApprovalStatusIsValid(t *testing.T) {
	assert.True(t, ApprovalPending.IsValid())
	assert.True(t, ApprovalApproved.IsValid())
	assert.True(t, ApprovalRejected.IsValid())
	assert.False(t, ApprovalStatus("ARCHIVED").IsValid())
	assert.False(t, ApprovalStatus("").IsValid())
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleAlumnus, RoleAdmin, RoleSuperAdmin} {
		assert.True(t, role.IsValid(), string(role))
	}
	assert.False(t, Role("MODERATOR").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRoleIsAdministrative(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdministrative())
	assert.True(t, RoleSuperAdmin.IsAdministrative())
	assert.False(t, RoleStudent.IsAdministrative())
	assert.False(t, RoleAlumnus.IsAdministrative())
}

func TestNumericLevel(t *testing.T) {
	assert.Equal(t, 300, (&Account{Level: "300"}).NumericLevel())
	assert.Equal(t, 0, (&Account{Level: "Graduated/Alumni"}).NumericLevel())
	assert.Equal(t, 0, (&Account{Level: ""}).NumericLevel())
}

func TestEngagementScore(t *testing.T) {
	account := &Account{Level: "300", ProfileCompletion: 75}
	assert.Equal(t, 2250, account.EngagementScore())

	graduate := &Account{Level: "Graduated/Alumni", ProfileCompletion: 100}
	assert.Equal(t, 1000, graduate.EngagementScore(), "non-numeric level contributes nothing")

	assert.Zero(t, (&Account{}).EngagementScore())
}
