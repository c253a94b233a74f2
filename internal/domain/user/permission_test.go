package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role       Role
		permission Permission
		want       bool
	}{
		{RoleAdmin, PermissionUserManage, true},
		{RoleAdmin, PermissionReviewUncommit, true},
		{RoleHR, PermissionEmployeeManage, true},
		{RoleHR, PermissionGDPRProcess, true},
		{RoleHR, PermissionUserManage, false},
		{RoleHR, PermissionReviewCreate, false},
		{RoleManager, PermissionReviewCreate, true},
		{RoleManager, PermissionLeaveApprove, true},
		{RoleManager, PermissionEmployeeManage, false},
		{RoleManager, PermissionInsightsAction, false},
		{RoleEmployee, PermissionLeaveCreate, true},
		{RoleEmployee, PermissionGDPRRequestOwn, true},
		{RoleEmployee, PermissionLeaveApprove, false},
		{RoleEmployee, PermissionEmployeeViewAll, false},
		{Role("ghost"), PermissionViewOwnProfile, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HasPermission(c.role, c.permission),
			"HasPermission(%s, %s)", c.role, c.permission)
	}
}

func TestEveryRoleCanManageOwnProfileAndLeave(t *testing.T) {
	for _, role := range AllRoles() {
		assert.True(t, HasPermission(role, PermissionViewOwnProfile), "%s should view own profile", role)
		assert.True(t, HasPermission(role, PermissionLeaveCreate), "%s should request leave", role)
		assert.True(t, HasPermission(role, PermissionGDPRRequestOwn), "%s should open own data requests", role)
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range AllRoles() {
		assert.True(t, IsValidRole(role))
	}
	assert.False(t, IsValidRole(Role("superuser")))
	assert.False(t, IsValidRole(Role("")))
}
