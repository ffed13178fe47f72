package student

import (
	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
)

type CreateReq struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	StudentNumber string `json:"student_number" binding:"required,max=50"`
}

// Create 学院管理员为本学院添加学生
func Create(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	var exists int64
	if err := db.Model(&model.Student{}).
		Where("email = ? OR student_number = ?", req.Email, req.StudentNumber).
		Count(&exists).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if exists > 0 {
		response.Fail(c, response.ErrAlreadyExists.WithTips("Student with this email or student number already exists"))
		return
	}

	student := model.Student{
		Name:          req.Name,
		Email:         req.Email,
		Password:      tools.PasswordEncrypt(req.Password),
		StudentNumber: req.StudentNumber,
		CollegeID:     tenant.CollegeID(),
	}
	if err := db.Create(&student).Error; err != nil {
		if database.IsDuplicateKey(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("Student with this email or student number already exists"))
			return
		}
		log.Error("创建学生失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("学生创建成功", "student_id", student.ID, "college_id", tenant.CollegeID())
	response.Success(c, gin.H{
		"message": "Student created successfully",
		"student": student,
	})
}

// List 本学院学生，search 匹配姓名、邮箱或学号
func List(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	p := tools.GetPage(c)
	q := tenant.Students(database.DB.WithContext(c.Request.Context()))
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("student.name LIKE ? OR student.email LIKE ? OR student.student_number LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	students := make([]model.Student, 0, p.PageSize)
	if err := q.Order("student.name ASC").Order("student.id ASC").
		Offset(p.Offset()).Limit(p.PageSize).
		Find(&students).Error; err != nil {
		log.Error("查询学生列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, tools.PageResult("students", students, total, p))
}

// Events 管理员查看某个学生的报名记录
func Events(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid student id"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())
	student, err := tenant.Student(db, id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	regs := make([]model.Registration, 0)
	if err := db.Preload("Event.College").
		Where("student_id = ?", student.ID).
		Order("registered_at DESC").
		Find(&regs).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"student": student, "registrations": regs})
}

type ProfileReq struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile 学生修改姓名或邮箱，空字段不修改
func UpdateProfile(c *gin.Context) {
	self, _, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	var student model.Student
	if err := db.First(&student, self.StudentID).Error; err != nil {
		if database.IsNotFound(err) {
			response.Fail(c, response.ErrNotFound.WithTips("Student not found"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if req.Name != "" {
		student.Name = req.Name
	}
	if req.Email != "" && req.Email != student.Email {
		var taken int64
		if err := db.Model(&model.Student{}).Where("email = ? AND id <> ?", req.Email, student.ID).Count(&taken).Error; err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		if taken > 0 {
			response.Fail(c, response.ErrAlreadyExists.WithTips("Email already in use"))
			return
		}
		student.Email = req.Email
	}
	if err := db.Save(&student).Error; err != nil {
		if database.IsDuplicateKey(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("Email already in use"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"message": "Profile updated successfully",
		"student": student,
	})
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=6"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func ChangePassword(c *gin.Context) {
	self, _, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	var student model.Student
	if err := db.First(&student, self.StudentID).Error; err != nil {
		if database.IsNotFound(err) {
			response.Fail(c, response.ErrNotFound.WithTips("Student not found"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if !tools.PasswordCompare(req.CurrentPassword, student.Password) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Current password is incorrect"))
		return
	}
	if err := db.Model(&student).Update("password", tools.PasswordEncrypt(req.NewPassword)).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("学生修改密码", "student_id", student.ID)
	response.Success(c, gin.H{"message": "Password changed successfully"})
}
