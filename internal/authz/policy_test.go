package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"scopri.app/eventilocali/internal/entity"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action Action
		want   bool
	}{
		{"user can submit", entity.RoleUser, ActionSubmitEvent, true},
		{"user can click", entity.RoleUser, ActionClickEvent, true},
		{"user cannot review", entity.RoleUser, ActionReviewEvents, false},
		{"user cannot approve", entity.RoleUser, ActionApproveEvent, false},
		{"user cannot manage users", entity.RoleUser, ActionManageUsers, false},
		{"reviewer can approve", entity.RoleReviewer, ActionApproveEvent, true},
		{"reviewer can reject", entity.RoleReviewer, ActionRejectEvent, true},
		{"reviewer can modify", entity.RoleReviewer, ActionModifyEvent, true},
		{"reviewer can lookup users", entity.RoleReviewer, ActionViewUserByRef, true},
		{"reviewer cannot manage users", entity.RoleReviewer, ActionManageUsers, false},
		{"reviewer cannot view dashboard", entity.RoleReviewer, ActionViewDashboard, false},
		{"admin can do everything", entity.RoleAdmin, ActionManageUsers, true},
		{"admin can review", entity.RoleAdmin, ActionReviewEvents, true},
		{"unknown role denied", "superuser", ActionSubmitEvent, false},
		{"empty role denied", "", ActionClickEvent, false},
		{"unknown action denied", entity.RoleAdmin, Action("event:delete"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.role, tt.action))
		})
	}
}
