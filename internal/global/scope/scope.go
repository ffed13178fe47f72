// Package scope 把 token 中的身份解析为租户（学院），并集中提供按租户过滤的查询。
//
// 报表与考勤只接受 Tenant 作为入参，Tenant 只能通过 TenantOf 获得，
// 所以任何查询都必然带上 college_id 过滤。
package scope

import (
	"campus-events/internal/global/database"
	"campus-events/internal/global/jwt"
	"campus-events/internal/global/response"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const IdentityKey = "identity"

// Identity 已认证身份，只有本包内的三种实现
type Identity interface {
	identity()
}

type SuperAdmin struct {
	AdminID uint
}

type CollegeAdmin struct {
	AdminID   uint
	CollegeID uint
}

type StudentUser struct {
	StudentID uint
	CollegeID uint
}

func (SuperAdmin) identity()   {}
func (CollegeAdmin) identity() {}
func (StudentUser) identity()  {}

// FromClaims 由 token 载荷构造身份，角色与字段不匹配时返回 false
func FromClaims(claims *jwt.Claims) (Identity, bool) {
	if claims == nil {
		return nil, false
	}
	switch claims.Role {
	case model.RoleSuperAdmin:
		if claims.AdminID == 0 {
			return nil, false
		}
		return SuperAdmin{AdminID: claims.AdminID}, true
	case model.RoleCollegeAdmin:
		if claims.AdminID == 0 || claims.CollegeID == 0 {
			return nil, false
		}
		return CollegeAdmin{AdminID: claims.AdminID, CollegeID: claims.CollegeID}, true
	case model.RoleStudent:
		if claims.StudentID == 0 || claims.CollegeID == 0 {
			return nil, false
		}
		return StudentUser{StudentID: claims.StudentID, CollegeID: claims.CollegeID}, true
	}
	return nil, false
}

var errAccountGone = response.ErrUnauthorized.WithTips("account no longer exists")

// Verify 确认 token 中的账号及其学院仍然存在，删除后旧 token 立即失效
func Verify(db *gorm.DB, id Identity) error {
	var q *gorm.DB
	switch v := id.(type) {
	case SuperAdmin:
		q = db.Model(&model.Admin{}).
			Where("admin.id = ? AND admin.role = ?", v.AdminID, model.RoleSuperAdmin)
	case CollegeAdmin:
		q = db.Model(&model.Admin{}).
			Joins("JOIN college ON college.id = admin.college_id AND college.deleted_at IS NULL").
			Where("admin.id = ? AND admin.role = ? AND admin.college_id = ?", v.AdminID, model.RoleCollegeAdmin, v.CollegeID)
	case StudentUser:
		q = db.Model(&model.Student{}).
			Joins("JOIN college ON college.id = student.college_id AND college.deleted_at IS NULL").
			Where("student.id = ? AND student.college_id = ?", v.StudentID, v.CollegeID)
	default:
		return response.ErrUnauthorized
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if n == 0 {
		return errAccountGone
	}
	return nil
}

// Get 读取中间件写入的身份
func Get(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Tenant 单个学院的数据范围
type Tenant struct {
	collegeID uint
}

// TenantOf 学院管理员与学生拥有租户；超级管理员没有租户，不能调用租户内操作
func TenantOf(id Identity) (Tenant, error) {
	switch v := id.(type) {
	case CollegeAdmin:
		return Tenant{collegeID: v.CollegeID}, nil
	case StudentUser:
		return Tenant{collegeID: v.CollegeID}, nil
	case SuperAdmin:
		return Tenant{}, response.ErrForbidden.WithTips("super admin has no college scope")
	default:
		return Tenant{}, response.ErrUnauthorized
	}
}

// AdminTenant 只接受学院管理员
func AdminTenant(id Identity) (Tenant, error) {
	switch v := id.(type) {
	case CollegeAdmin:
		return Tenant{collegeID: v.CollegeID}, nil
	case SuperAdmin, StudentUser:
		return Tenant{}, response.ErrForbidden
	default:
		return Tenant{}, response.ErrUnauthorized
	}
}

// FromGin 组合 Get 与 AdminTenant，报表和考勤接口使用
func FromGin(c *gin.Context) (Tenant, error) {
	id, ok := Get(c)
	if !ok {
		return Tenant{}, response.ErrUnauthorized
	}
	return AdminTenant(id)
}

func (t Tenant) CollegeID() uint {
	return t.collegeID
}

func (t Tenant) Events(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Event{}).Where("event.college_id = ?", t.collegeID)
}

func (t Tenant) Students(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Student{}).Where("student.college_id = ?", t.collegeID)
}

// eventIDs 子查询：本学院的全部活动 ID
func (t Tenant) eventIDs(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Event{}).Select("id").Where("college_id = ?", t.collegeID)
}

// Registrations 本学院活动下的报名记录
func (t Tenant) Registrations(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Registration{}).Where("registration.event_id IN (?)", t.eventIDs(db))
}

// Feedbacks 本学院活动下的反馈
func (t Tenant) Feedbacks(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Feedback{}).Where("feedback.event_id IN (?)", t.eventIDs(db))
}

// Event 按 ID 查找本学院活动，不存在与跨学院统一返回 NotFound
func (t Tenant) Event(db *gorm.DB, id uint) (*model.Event, error) {
	var e model.Event
	if err := t.Events(db).First(&e, "event.id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, response.ErrNotFound.WithTips("Event not found")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &e, nil
}

// Student 按 ID 查找本学院学生，不存在与跨学院统一返回 NotFound
func (t Tenant) Student(db *gorm.DB, id uint) (*model.Student, error) {
	var s model.Student
	if err := t.Students(db).First(&s, "student.id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, response.ErrNotFound.WithTips("Student not found")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &s, nil
}

// StudentFromGin 学生接口使用，返回学生身份及其所在学院
func StudentFromGin(c *gin.Context) (StudentUser, Tenant, error) {
	id, ok := Get(c)
	if !ok {
		return StudentUser{}, Tenant{}, response.ErrUnauthorized
	}
	s, ok := id.(StudentUser)
	if !ok {
		return StudentUser{}, Tenant{}, response.ErrForbidden
	}
	t, err := TenantOf(s)
	return s, t, err
}
