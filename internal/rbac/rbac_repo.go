package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles() ([]UserRoleRow, error)
	GetRolePermissions() ([]RolePermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type UserRoleRow struct {
	UserID string
	Role   string
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

func (r *repository) GetUserRoles() ([]UserRoleRow, error) {
	var rows []UserRoleRow
	err := r.db.
		Table("user_roles").
		Select("user_id::text AS user_id, role").
		Where("active = true").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions() ([]RolePermissionRow, error) {
	var rows []RolePermissionRow
	err := r.db.
		Table("role_permissions").
		Select("role, resource, action").
		Scan(&rows).Error
	return rows, err
}
