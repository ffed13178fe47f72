package auth

import (
	"campus-events/internal/global/database"
	"campus-events/internal/global/jwt"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
)

const (
	kindAdmin   = "admin"
	kindStudent = "student"
)

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminLogin 超级管理员与学院管理员登录
func AdminLogin(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	if err := guard.Check(ctx, kindAdmin, req.Email); err != nil {
		log.Warn("管理员登录已锁定", "email", req.Email)
		response.Fail(c, err)
		return
	}

	var admin model.Admin
	err := database.DB.WithContext(ctx).Preload("College").Where("email = ?", req.Email).First(&admin).Error
	switch {
	case database.IsNotFound(err):
		guard.Fail(ctx, kindAdmin, req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if !tools.PasswordCompare(req.Password, admin.Password) {
		log.Warn("管理员密码错误", "email", req.Email)
		guard.Fail(ctx, kindAdmin, req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}
	guard.Reset(ctx, kindAdmin, req.Email)

	payload := jwt.Payload{Role: admin.Role, AdminID: admin.ID}
	if admin.CollegeID != nil {
		payload.CollegeID = *admin.CollegeID
	}
	log.Info("管理员登录成功", "admin_id", admin.ID, "role", admin.Role)
	response.Success(c, gin.H{
		"token": jwt.CreateToken(payload),
		"admin": admin,
	})
}

func StudentLogin(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	if err := guard.Check(ctx, kindStudent, req.Email); err != nil {
		log.Warn("学生登录已锁定", "email", req.Email)
		response.Fail(c, err)
		return
	}

	var student model.Student
	err := database.DB.WithContext(ctx).Preload("College").Where("email = ?", req.Email).First(&student).Error
	switch {
	case database.IsNotFound(err):
		guard.Fail(ctx, kindStudent, req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if !tools.PasswordCompare(req.Password, student.Password) {
		log.Warn("学生密码错误", "email", req.Email)
		guard.Fail(ctx, kindStudent, req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}
	guard.Reset(ctx, kindStudent, req.Email)

	log.Info("学生登录成功", "student_id", student.ID)
	response.Success(c, gin.H{
		"token": jwt.CreateToken(jwt.Payload{
			Role:      model.RoleStudent,
			StudentID: student.ID,
			CollegeID: student.CollegeID,
		}),
		"student": student,
	})
}

// Me 返回当前登录身份的资料
func Me(c *gin.Context) {
	id, ok := scope.Get(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	var adminID uint
	switch v := id.(type) {
	case scope.SuperAdmin:
		adminID = v.AdminID
	case scope.CollegeAdmin:
		adminID = v.AdminID
	case scope.StudentUser:
		var student model.Student
		if err := db.Preload("College").First(&student, v.StudentID).Error; err != nil {
			failLookup(c, err)
			return
		}
		response.Success(c, gin.H{"role": model.RoleStudent, "student": student})
		return
	}

	var admin model.Admin
	if err := db.Preload("College").First(&admin, adminID).Error; err != nil {
		failLookup(c, err)
		return
	}
	response.Success(c, gin.H{"role": admin.Role, "admin": admin})
}

// failLookup token 有效但账号已被删除时视为未登录
func failLookup(c *gin.Context, err error) {
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	response.Fail(c, response.ErrDatabase.WithOrigin(err))
}

// Logout 令牌由客户端丢弃，服务端不保存会话
func Logout(c *gin.Context) {
	if claims, ok := jwt.GetUserPayload(c); ok {
		log.Info("退出登录", "role", claims.Role, "admin_id", claims.AdminID, "student_id", claims.StudentID)
	}
	response.Success(c, gin.H{"message": "Logged out"})
}
