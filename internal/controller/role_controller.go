package controller

import (
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RoleController 角色与权限码的管理，仅管理员可用
type RoleController struct {
	PermissionService *service.PermissionService
}

func NewRoleController(permissionService *service.PermissionService) *RoleController {
	return &RoleController{PermissionService: permissionService}
}

// ListRoles godoc
// @Summary 角色列表
// @Tags 权限管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Role} "成功"
// @Router /api/admin/roles [get]
func (c *RoleController) ListRoles(ctx *gin.Context) {
	roles, err := c.PermissionService.ListRoles()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, roles)
}

// ListPermissions godoc
// @Summary 权限码列表
// @Tags 权限管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Permission} "成功"
// @Router /api/admin/permissions [get]
func (c *RoleController) ListPermissions(ctx *gin.Context) {
	permissions, err := c.PermissionService.ListPermissions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, permissions)
}

type UpdateRolePermissionsRequest struct {
	Codes []string `json:"codes" binding:"required"`
}

// UpdateRolePermissions godoc
// @Summary 更新角色权限
// @Description 整体替换某角色的权限码集合
// @Tags 权限管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "角色ID"
// @Param   body body UpdateRolePermissionsRequest true "权限码集合"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/roles/{id}/permissions [put]
func (c *RoleController) UpdateRolePermissions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateRolePermissionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.PermissionService.UpdateRolePermissions(id, req.Codes); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}
