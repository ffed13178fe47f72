package superadmin

import (
	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/model"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CollegeCreateReq struct {
	Name    string `json:"name" binding:"required,min=2,max=191"`
	Address string `json:"address" binding:"required,min=5,max=255"`
}

func CreateCollege(c *gin.Context) {
	var req CollegeCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	college := model.College{Name: req.Name, Address: req.Address}
	if err := db.Create(&college).Error; err != nil {
		if database.IsDuplicateKey(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("College already exists"))
			return
		}
		log.Error("创建学院失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("学院创建成功", "college_id", college.ID, "name", college.Name)
	response.Success(c, gin.H{"college": college})
}

func ListColleges(c *gin.Context) {
	var colleges []model.College
	if err := database.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&colleges).Error; err != nil {
		log.Error("查询学院列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"colleges": colleges})
}

// GetCollege 学院详情及其管理员
func GetCollege(c *gin.Context) {
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid college id"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	college, err := findCollege(db, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var admins []model.Admin
	if err := db.Where("college_id = ? AND role = ?", id, model.RoleCollegeAdmin).Order("email ASC").Find(&admins).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"college": college, "admins": admins})
}

// DeleteCollege 软删除学院及其管理员、学生、活动、报名与反馈
func DeleteCollege(c *gin.Context) {
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid college id"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())
	if _, err := findCollege(db, id); err != nil {
		response.Fail(c, err)
		return
	}

	if err := DeleteCollegeCascade(db, id); err != nil {
		log.Error("删除学院失败", "error", err, "college_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("学院已删除", "college_id", id)
	response.Success(c, gin.H{"message": "College deleted successfully"})
}

// DeleteCollegeCascade 在一个事务中软删除学院拥有的全部数据
func DeleteCollegeCascade(db *gorm.DB, collegeID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		eventIDs := tx.Model(&model.Event{}).Select("id").Where("college_id = ?", collegeID)
		studentIDs := tx.Model(&model.Student{}).Select("id").Where("college_id = ?", collegeID)

		if err := tx.Where("event_id IN (?) OR student_id IN (?)", eventIDs, studentIDs).Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id IN (?) OR student_id IN (?)", eventIDs, studentIDs).Delete(&model.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("college_id = ?", collegeID).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("college_id = ?", collegeID).Delete(&model.Student{}).Error; err != nil {
			return err
		}
		if err := tx.Where("college_id = ?", collegeID).Delete(&model.Admin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.College{}, collegeID).Error
	})
}

func findCollege(db *gorm.DB, id uint) (*model.College, error) {
	var college model.College
	if err := db.First(&college, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, response.ErrNotFound.WithTips("College not found")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &college, nil
}

type AdminCreateReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func CreateCollegeAdmin(c *gin.Context) {
	collegeID, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid college id"))
		return
	}
	var req AdminCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	college, err := findCollege(db, collegeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	admin := model.Admin{
		Email:     req.Email,
		Password:  tools.PasswordEncrypt(req.Password),
		Role:      model.RoleCollegeAdmin,
		CollegeID: &college.ID,
	}
	if err := admin.Validate(); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		if database.IsDuplicateKey(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("Admin already exists"))
			return
		}
		log.Error("创建学院管理员失败", "error", err, "college_id", collegeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	admin.College = college
	log.Info("学院管理员创建成功", "admin_id", admin.ID, "college_id", collegeID)
	response.Success(c, gin.H{"admin": admin})
}

func ListAdmins(c *gin.Context) {
	var admins []model.Admin
	if err := database.DB.WithContext(c.Request.Context()).
		Preload("College").
		Order("role DESC").Order("email ASC").
		Find(&admins).Error; err != nil {
		log.Error("查询管理员列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"admins": admins})
}

// DeleteAdmin 只能删除学院管理员
func DeleteAdmin(c *gin.Context) {
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid admin id"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	var admin model.Admin
	if err := db.First(&admin, id).Error; err != nil {
		if database.IsNotFound(err) {
			response.Fail(c, response.ErrNotFound.WithTips("Admin not found"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if admin.Role != model.RoleCollegeAdmin {
		response.Fail(c, response.ErrForbidden.WithTips("super admin cannot be deleted"))
		return
	}
	if err := db.Delete(&admin).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("学院管理员已删除", "admin_id", id)
	response.Success(c, gin.H{"message": "Admin deleted successfully"})
}
