package response

import (
	"errors"
	"net/http"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/absence"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/auth"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/compensation"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/gdpr"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/offboarding"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/recruitment"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/review"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / session domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing session token")
	case errors.Is(err, auth.ErrOAuthEmailNotFound):
		Unauthorized(w, "No account matches this Google email")
	case errors.Is(err, auth.ErrSSONotConfigured):
		BadRequest(w, "Google SSO is not configured", nil)
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
		Unauthorized(w, "Session expired, please log in again")
	case errors.Is(err, session.ErrCSRFTokenMismatch):
		Forbidden(w, "CSRF token mismatch")
	case errors.Is(err, session.ErrAuditReauthRequired):
		ForbiddenWithCode(w, "AUDIT_REAUTH_REQUIRED", "Audit access requires password re-verification")
	case errors.Is(err, session.ErrAuditReauthExpired):
		ForbiddenWithCode(w, "AUDIT_REAUTH_EXPIRED", "Audit re-verification has expired")

	// Tenant domain errors
	case errors.Is(err, tenant.ErrTenantNotFound):
		NotFound(w, "Tenant not found")
	case errors.Is(err, tenant.ErrSlugExists):
		Conflict(w, "Tenant slug already taken")
	case errors.Is(err, tenant.ErrTierRequired):
		ForbiddenWithCode(w, "TIER_REQUIRED", "Subscription tier does not include this feature")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered in this tenant")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this tenant")
	case errors.Is(err, employee.ErrAlreadyOffboarded):
		Conflict(w, "Employee is already offboarded")
	case errors.Is(err, employee.ErrNotYourReport):
		Forbidden(w, "Employee does not report to you")
	case errors.Is(err, employee.ErrSelfManagerInvalid):
		BadRequest(w, "Employee cannot be their own manager", nil)

	// Review domain errors
	case errors.Is(err, review.ErrReviewNotFound):
		NotFound(w, "Review not found")
	case errors.Is(err, review.ErrAlreadyCommitted):
		Conflict(w, "Review is already committed")
	case errors.Is(err, review.ErrNotCommitted):
		Conflict(w, "Review is not committed")
	case errors.Is(err, review.ErrCommittedReviewExists):
		Conflict(w, "A committed review already exists for this week")
	case errors.Is(err, review.ErrDraftExists):
		Conflict(w, "A draft review already exists for this week")
	case errors.Is(err, review.ErrNotAuthor):
		Forbidden(w, "Only the author can modify this review")
	case errors.Is(err, review.ErrReviewImmutable):
		Conflict(w, "Committed reviews cannot be edited")
	case errors.Is(err, review.ErrInvalidWeekEnding):
		BadRequest(w, "review_date must be a week-ending Friday", nil)
	case errors.Is(err, review.ErrSelfOnly):
		Forbidden(w, "Self-reflections can only be written for yourself")
	case errors.Is(err, review.ErrNoEmployeeRecord):
		Forbidden(w, "No employee record is linked to this account")

	// Absence domain errors
	case errors.Is(err, absence.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, absence.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, absence.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing one")
	case errors.Is(err, absence.ErrInvalidLeaveType):
		BadRequest(w, "Invalid leave type", nil)
	case errors.Is(err, absence.ErrInsightNotFound):
		NotFound(w, "Absence insight not found")
	case errors.Is(err, absence.ErrInvalidTransition):
		Conflict(w, "Invalid insight status transition")

	// Offboarding domain errors
	case errors.Is(err, offboarding.ErrWorkflowNotFound):
		NotFound(w, "Offboarding workflow not found")
	case errors.Is(err, offboarding.ErrWorkflowExists):
		Conflict(w, "An active offboarding workflow already exists for this employee")
	case errors.Is(err, offboarding.ErrWorkflowNotActive):
		Conflict(w, "Offboarding workflow is not active")
	case errors.Is(err, offboarding.ErrChecklistIncomplete):
		BadRequest(w, "Offboarding checklist has incomplete items", nil)
	case errors.Is(err, offboarding.ErrChecklistItemNotFound):
		NotFound(w, "Checklist item not found")
	case errors.Is(err, offboarding.ErrHandoverItemNotFound):
		NotFound(w, "Handover item not found")
	case errors.Is(err, offboarding.ErrInterviewNotFound):
		NotFound(w, "Exit interview not found")

	// GDPR domain errors
	case errors.Is(err, gdpr.ErrRequestNotFound):
		NotFound(w, "Data request not found")
	case errors.Is(err, gdpr.ErrRequestNotPending):
		Conflict(w, "Data request is not pending")
	case errors.Is(err, gdpr.ErrOpenRequestExists):
		Conflict(w, "An open data request of this type already exists")
	case errors.Is(err, gdpr.ErrNotOwnRequest):
		Forbidden(w, "Employees can only open requests for themselves")
	case errors.Is(err, gdpr.ErrInvalidRequestType):
		BadRequest(w, "Invalid data request type", nil)

	// Recruitment domain errors
	case errors.Is(err, recruitment.ErrOpportunityNotFound):
		NotFound(w, "Opportunity not found")
	case errors.Is(err, recruitment.ErrOpportunityClosed):
		Conflict(w, "Opportunity is closed")
	case errors.Is(err, recruitment.ErrApplicationNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, recruitment.ErrDuplicateApplication):
		Conflict(w, "Candidate has already applied to this opportunity")
	case errors.Is(err, recruitment.ErrInvalidStage):
		Conflict(w, "Invalid application stage transition")

	// Compensation domain errors
	case errors.Is(err, compensation.ErrPayBandNotFound):
		NotFound(w, "Pay band not found")
	case errors.Is(err, compensation.ErrPayBandNameTaken):
		Conflict(w, "Pay band name already exists")
	case errors.Is(err, compensation.ErrRecordNotFound):
		NotFound(w, "Compensation record not found")
	case errors.Is(err, compensation.ErrOutsidePayBand):
		BadRequest(w, "Salary falls outside the selected pay band", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "You cannot access this notification")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
