package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) ListRoles() ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.Preload("Permissions").Order("id asc").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) FindRoleByName(name string) (*model.Role, error) {
	var role model.Role
	err := r.DB.Preload("Permissions").Where("name = ?", name).First(&role).Error
	return &role, err
}

func (r *RoleRepository) ListPermissions() ([]model.Permission, error) {
	var perms []model.Permission
	err := r.DB.Order("code asc").Find(&perms).Error
	return perms, err
}

// ReplaceRolePermissions 整体替换角色的权限集合
func (r *RoleRepository) ReplaceRolePermissions(roleID uint, permissionCodes []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var role model.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			return err
		}
		var perms []model.Permission
		if len(permissionCodes) > 0 {
			if err := tx.Where("code IN ?", permissionCodes).Find(&perms).Error; err != nil {
				return err
			}
		}
		return tx.Model(&role).Association("Permissions").Replace(perms)
	})
}

// HasPermission 角色-权限矩阵查询，权限中间件调用
func (r *RoleRepository) HasPermission(roleName, permissionCode string) (bool, error) {
	var count int64
	err := r.DB.Table("role_permissions rp").
		Joins("JOIN roles r ON rp.role_id = r.id").
		Joins("JOIN permissions p ON rp.permission_id = p.id").
		Where("r.name = ? AND p.code = ?", roleName, permissionCode).
		Count(&count).Error
	return count > 0, err
}
