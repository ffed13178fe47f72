package model

import "errors"

type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleCollegeAdmin Role = "college_admin"
	// RoleStudent 仅出现在 token 中，不落库到 admin 表
	RoleStudent Role = "student"
)

type Admin struct {
	Model
	Email     string   `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Password  string   `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role     `gorm:"type:varchar(20);not null;default:college_admin" json:"role"`
	CollegeID *uint    `gorm:"index" json:"college_id"`
	College   *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
}

// Validate 学院管理员必须归属学院，超级管理员不能归属学院
func (a *Admin) Validate() error {
	switch a.Role {
	case RoleCollegeAdmin:
		if a.CollegeID == nil || *a.CollegeID == 0 {
			return errors.New("college_id is required for college_admin")
		}
	case RoleSuperAdmin:
		if a.CollegeID != nil {
			return errors.New("super_admin cannot belong to a college")
		}
	default:
		return errors.New("invalid role")
	}
	return nil
}
