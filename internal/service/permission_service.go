package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
)

// PermissionService 角色-权限矩阵的查询与编辑
type PermissionService struct {
	Repo *repository.RoleRepository
}

func NewPermissionService(repo *repository.RoleRepository) *PermissionService {
	return &PermissionService{Repo: repo}
}

// Require 授权操作的准入检查。管理员直接放行，和角色中间件保持一致。
func (s *PermissionService) Require(role model.UserRole, code string) error {
	if role == model.Admin {
		return nil
	}
	ok, err := s.Repo.HasPermission(string(role), code)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *PermissionService) ListRoles() ([]model.Role, error) {
	return s.Repo.ListRoles()
}

func (s *PermissionService) ListPermissions() ([]model.Permission, error) {
	return s.Repo.ListPermissions()
}

func (s *PermissionService) UpdateRolePermissions(roleID uint, codes []string) error {
	return s.Repo.ReplaceRolePermissions(roleID, codes)
}
