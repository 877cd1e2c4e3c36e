package http

import (
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/role"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type RoleHandler interface {
	ListRoles(w http.ResponseWriter, r *http.Request)
	GetRole(w http.ResponseWriter, r *http.Request)
	CreateRole(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)
	RolePermissions(w http.ResponseWriter, r *http.Request)
	AssignPermissions(w http.ResponseWriter, r *http.Request)

	ListPermissions(w http.ResponseWriter, r *http.Request)
	PermissionTree(w http.ResponseWriter, r *http.Request)
}

type roleHandlerImpl struct {
	roleService       role.RoleService
	permissionService permission.PermissionService
}

func NewRoleHandler(roleService role.RoleService, permissionService permission.PermissionService) RoleHandler {
	return &roleHandlerImpl{roleService: roleService, permissionService: permissionService}
}

func (h *roleHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	page, err := pagination.FromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	roles, total, err := h.roleService.List(r.Context(), tenantID, page)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Roles retrieved", roles, total)
}

func (h *roleHandlerImpl) GetRole(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.roleService.Get(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Role retrieved", result)
}

func (h *roleHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req role.CreateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.roleService.Create(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Role created", result)
}

func (h *roleHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req role.UpdateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.roleService.Update(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Role updated", result)
}

func (h *roleHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.roleService.Delete(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Role deleted", nil)
}

func (h *roleHandlerImpl) RolePermissions(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	perms, err := h.roleService.Permissions(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Role permissions retrieved", perms, int64(len(perms)))
}

func (h *roleHandlerImpl) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req role.AssignPermissionsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	perms, err := h.roleService.AssignPermissions(r.Context(), tenantID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Permissions assigned", perms)
}

func (h *roleHandlerImpl) ListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.permissionService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Permissions retrieved", perms, int64(len(perms)))
}

func (h *roleHandlerImpl) PermissionTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.permissionService.Tree(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Permission tree retrieved", tree)
}
