package auth

import (
	"github.com/ykaya/deptportal/internal/app/models"
)

// Action identifies a privileged operation a role may or may not perform.
// Every service consults CanPerform with one of these instead of repeating
// inline role checks per route.
type Action string

const (
	ActionApproveAccount Action = "account.approve"
	ActionSetRole        Action = "account.set_role"
	ActionListAccounts   Action = "account.list"
	ActionModeratePost   Action = "post.moderate"
	ActionFeaturePost    Action = "post.feature"
	ActionCreatePoll     Action = "poll.create"
	ActionClosePoll      Action = "poll.close"
	ActionViewModeration Action = "moderation.view"
)

// permissions maps each action to the roles allowed to perform it.
// Approval and role changes belong to super_admin alone; content and poll
// administration is shared with admin. Students and alumni hold no entry.
var permissions = map[Action][]models.Role{
	ActionApproveAccount: {models.RoleSuperAdmin},
	ActionSetRole:        {models.RoleSuperAdmin},
	ActionListAccounts:   {models.RoleSuperAdmin},
	ActionModeratePost:   {models.RoleAdmin, models.RoleSuperAdmin},
	ActionFeaturePost:    {models.RoleAdmin, models.RoleSuperAdmin},
	ActionCreatePoll:     {models.RoleAdmin, models.RoleSuperAdmin},
	ActionClosePoll:      {models.RoleAdmin, models.RoleSuperAdmin},
	ActionViewModeration: {models.RoleAdmin, models.RoleSuperAdmin},
}

// CanPerform reports whether the role is allowed to perform the action
func CanPerform(role models.Role, action Action) bool {
	allowed, ok := permissions[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
