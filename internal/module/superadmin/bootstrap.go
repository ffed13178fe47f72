package superadmin

import (
	"campus-events/internal/model"
	"campus-events/tools"

	"gorm.io/gorm"
)

// EnsureSuperAdmin 不存在任何超级管理员时按给定账号创建，返回是否新建
func EnsureSuperAdmin(db *gorm.DB, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	var n int64
	if err := db.Model(&model.Admin{}).Where("role = ?", model.RoleSuperAdmin).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	admin := model.Admin{
		Email:    email,
		Password: tools.PasswordEncrypt(password),
		Role:     model.RoleSuperAdmin,
	}
	if err := admin.Validate(); err != nil {
		return false, err
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
