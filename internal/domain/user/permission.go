package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Reviews
	PermissionReviewCreate   Permission = "review.create"
	PermissionReviewViewTeam Permission = "review.view_team"
	PermissionReviewUncommit Permission = "review.uncommit"

	// Leave / Absence
	PermissionLeaveViewOwn      Permission = "leave.view_own"
	PermissionLeaveCreate       Permission = "leave.create"
	PermissionLeaveViewAll      Permission = "leave.view_all"
	PermissionLeaveApprove      Permission = "leave.approve"
	PermissionInsightsView      Permission = "insights.view"
	PermissionInsightsAction    Permission = "insights.action"
	PermissionInsightsRunDetect Permission = "insights.run_detection"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Offboarding
	PermissionOffboardingView   Permission = "offboarding.view"
	PermissionOffboardingManage Permission = "offboarding.manage"

	// Recruitment
	PermissionRecruitmentView   Permission = "recruitment.view"
	PermissionRecruitmentManage Permission = "recruitment.manage"

	// Compensation
	PermissionCompensationView   Permission = "compensation.view"
	PermissionCompensationManage Permission = "compensation.manage"

	// GDPR
	PermissionGDPRRequestOwn Permission = "gdpr.request_own"
	PermissionGDPRProcess    Permission = "gdpr.process"

	// Audit
	PermissionAuditView Permission = "audit.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionReviewCreate,
		PermissionReviewViewTeam,
		PermissionReviewUncommit,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionInsightsView,
		PermissionInsightsAction,
		PermissionInsightsRunDetect,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionOffboardingView,
		PermissionOffboardingManage,
		PermissionRecruitmentView,
		PermissionRecruitmentManage,
		PermissionCompensationView,
		PermissionCompensationManage,
		PermissionGDPRRequestOwn,
		PermissionGDPRProcess,
		PermissionAuditView,
		PermissionUserManage,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionReviewViewTeam,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionInsightsView,
		PermissionInsightsAction,
		PermissionInsightsRunDetect,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionOffboardingView,
		PermissionOffboardingManage,
		PermissionRecruitmentView,
		PermissionRecruitmentManage,
		PermissionCompensationView,
		PermissionCompensationManage,
		PermissionGDPRRequestOwn,
		PermissionGDPRProcess,
		PermissionAuditView,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionReviewCreate,
		PermissionReviewViewTeam,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionInsightsView,
		PermissionEmployeeViewAll,
		PermissionOffboardingView,
		PermissionCompensationView,
		PermissionGDPRRequestOwn,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionGDPRRequestOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, ok := RolePermissions[role]
	if !ok {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
