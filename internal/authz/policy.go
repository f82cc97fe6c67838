// Package authz holds the authorization policy as a pure function of the
// acting user's role, independent of the transport layer. Services consult it
// before every mutating operation; handlers never make role decisions inline.
package authz

import "scopri.app/eventilocali/internal/entity"

type Action string

const (
	ActionSubmitEvent   Action = "event:submit"
	ActionEditOwnEvent  Action = "event:edit_own"
	ActionClickEvent    Action = "event:click"
	ActionReviewEvents  Action = "review:list"
	ActionApproveEvent  Action = "review:approve"
	ActionRejectEvent   Action = "review:reject"
	ActionModifyEvent   Action = "review:modify"
	ActionViewUserByRef Action = "user:lookup"
	ActionManageUsers   Action = "admin:users"
	ActionViewDashboard Action = "admin:dashboard"
)

var policy = map[Action][]string{
	ActionSubmitEvent:   {entity.RoleUser, entity.RoleReviewer, entity.RoleAdmin},
	ActionEditOwnEvent:  {entity.RoleUser, entity.RoleReviewer, entity.RoleAdmin},
	ActionClickEvent:    {entity.RoleUser, entity.RoleReviewer, entity.RoleAdmin},
	ActionReviewEvents:  {entity.RoleReviewer, entity.RoleAdmin},
	ActionApproveEvent:  {entity.RoleReviewer, entity.RoleAdmin},
	ActionRejectEvent:   {entity.RoleReviewer, entity.RoleAdmin},
	ActionModifyEvent:   {entity.RoleReviewer, entity.RoleAdmin},
	ActionViewUserByRef: {entity.RoleReviewer, entity.RoleAdmin},
	ActionManageUsers:   {entity.RoleAdmin},
	ActionViewDashboard: {entity.RoleAdmin},
}

// Allow reports whether a user with the given role may perform the action.
// Unknown actions and unknown roles are denied.
func Allow(role string, action Action) bool {
	allowed, ok := policy[action]
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
