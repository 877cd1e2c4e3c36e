package response

import (
	"errors"
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/attendance"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/contract"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/master"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/role"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/salary"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/user"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/oauth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

type mapping struct {
	err     error
	status  int
	message string
}

// errorMappings is checked in order; the first errors.Is match wins.
// An empty message means the sentinel's own text is sent.
var errorMappings = []mapping{
	// Auth
	{jwt.ErrMissingToken, http.StatusUnauthorized, "Authorization header is required"},
	{jwt.ErrMalformedToken, http.StatusUnauthorized, "Authorization header must be in the form 'Bearer <token>'"},
	{jwt.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, ""},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrTokenRevoked, http.StatusUnauthorized, "Token has been revoked"},
	{auth.ErrRefreshTokenRevoked, http.StatusUnauthorized, "Refresh token has been revoked"},
	{auth.ErrUserNotFound, http.StatusUnauthorized, "User no longer exists"},
	{auth.ErrOAuthStateMismatch, http.StatusBadRequest, ""},
	{auth.ErrOAuthNotConfigured, http.StatusNotFound, ""},
	{oauth.ErrEmailNotVerified, http.StatusForbidden, ""},
	{user.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{user.ErrUserEmailExists, http.StatusConflict, ""},
	{user.ErrOAuthProviderIDExists, http.StatusConflict, ""},

	// Permissions and roles
	{permission.ErrPermissionDenied, http.StatusForbidden, ""},
	{permission.ErrPermissionNotFound, http.StatusNotFound, ""},
	{permission.ErrPermissionCycle, http.StatusConflict, ""},
	{permission.ErrPermissionTreeTooDeep, http.StatusConflict, ""},
	{role.ErrRoleNotFound, http.StatusNotFound, ""},
	{role.ErrRoleNameExists, http.StatusConflict, ""},
	{role.ErrRoleInUse, http.StatusConflict, ""},
	{role.ErrUnknownPermissionIDs, http.StatusBadRequest, ""},

	// Master data
	{master.ErrPositionNotFound, http.StatusNotFound, ""},
	{master.ErrPositionNameExists, http.StatusConflict, ""},
	{master.ErrDepartmentNotFound, http.StatusNotFound, ""},
	{master.ErrDepartmentNameExists, http.StatusConflict, ""},
	{master.ErrContractTypeNotFound, http.StatusNotFound, ""},
	{master.ErrContractTypeNameExists, http.StatusConflict, ""},

	// Employees and contracts
	{employee.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
	{employee.ErrNIKExists, http.StatusConflict, "NIK already registered"},
	{employee.ErrEmailExists, http.StatusConflict, "Email already registered in this tenant"},
	{employee.ErrManagerNotFound, http.StatusBadRequest, ""},
	{employee.ErrSelfManager, http.StatusBadRequest, ""},
	{employee.ErrManagerCycle, http.StatusConflict, ""},
	{employee.ErrInvalidReference, http.StatusBadRequest, ""},
	{contract.ErrContractNotFound, http.StatusNotFound, ""},
	{contract.ErrContractTypeInvalid, http.StatusBadRequest, ""},

	// Attendance, salaries and payroll
	{attendance.ErrAttendanceNotFound, http.StatusNotFound, ""},
	{attendance.ErrAttendanceAlreadyExists, http.StatusConflict, ""},
	{attendance.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
	{salary.ErrSalaryNotFound, http.StatusNotFound, ""},
	{salary.ErrSalaryExists, http.StatusConflict, ""},
	{salary.ErrNoActiveSalary, http.StatusUnprocessableEntity, ""},
	{salary.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
	{payroll.ErrPayslipNotFound, http.StatusNotFound, ""},
	{payroll.ErrPayslipExists, http.StatusConflict, ""},
	{payroll.ErrDeductionNotFound, http.StatusNotFound, ""},
	{payroll.ErrSettingsNotFound, http.StatusNotFound, ""},
	{payroll.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
	{payroll.ErrNoPayslips, http.StatusNotFound, ""},
}

// StatusOf returns the status HandleError would answer with.
func StatusOf(err error) int {
	if m, ok := lookup(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

func lookup(err error) (mapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			if m.message == "" {
				m.message = capitalize(m.err.Error())
			}
			return m, true
		}
	}
	return mapping{}, false
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs)
		return
	}

	if m, ok := lookup(err); ok {
		Error(w, m.status, m.message)
		return
	}

	InternalServerError(w, "An unexpected error occurred")
}
