package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer memuat model RBAC dari file .conf tanpa policy adapter.
// Policy dimuat dari database oleh rbac.Service saat bootstrap.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
