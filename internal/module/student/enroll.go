package student

import (
	"time"

	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errNotOpen           = response.ErrInvalidRequest.WithTips("Event is not available for registration")
	errFull              = response.ErrInvalidRequest.WithTips("Event is full")
	errAlreadyRegistered = response.ErrAlreadyExists.WithTips("Already registered for this event")
)

// Register 学生报名本学院的活动
// 名额检查与插入之间没有加锁，并发报名可能超出 max_participants 一到几个名额
func Register(db *gorm.DB, t scope.Tenant, studentID, eventID uint, now time.Time) (*model.Registration, error) {
	event, err := t.Event(db, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != model.EventStatusUpcoming {
		return nil, errNotOpen
	}

	var exists int64
	if err := db.Model(&model.Registration{}).
		Where("student_id = ? AND event_id = ?", studentID, eventID).
		Count(&exists).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if exists > 0 {
		return nil, errAlreadyRegistered
	}

	if event.MaxParticipants != nil {
		var count int64
		if err := db.Model(&model.Registration{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		if count >= int64(*event.MaxParticipants) {
			return nil, errFull
		}
	}

	reg := model.Registration{
		StudentID:    studentID,
		EventID:      eventID,
		Status:       model.RegistrationRegistered,
		RegisteredAt: now,
	}
	if err := insertRegistration(db, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// insertRegistration 并发报名越过计数检查时，由唯一索引兜底
func insertRegistration(db *gorm.DB, reg *model.Registration) error {
	if err := db.Create(reg).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return errAlreadyRegistered
		}
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// Unregister 物理删除报名记录，之后可以重新报名
func Unregister(db *gorm.DB, studentID, eventID uint) error {
	res := db.Unscoped().Where("student_id = ? AND event_id = ?", studentID, eventID).Delete(&model.Registration{})
	if res.Error != nil {
		return response.ErrDatabase.WithOrigin(res.Error)
	}
	if res.RowsAffected == 0 {
		return response.ErrNotFound.WithTips("Registration not found")
	}
	return nil
}

// MyRegistration 学生自己的报名记录，附带是否已评价
type MyRegistration struct {
	model.Registration
	HasFeedback bool `json:"hasFeedback"`
}

// ListOwn 按报名时间倒序
func ListOwn(db *gorm.DB, studentID uint) ([]MyRegistration, error) {
	var regs []model.Registration
	if err := db.Preload("Event.College").
		Where("student_id = ?", studentID).
		Order("registered_at DESC").Order("id DESC").
		Find(&regs).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	var rated []uint
	if err := db.Model(&model.Feedback{}).Where("student_id = ?", studentID).Pluck("event_id", &rated).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	hasFeedback := make(map[uint]bool, len(rated))
	for _, id := range rated {
		hasFeedback[id] = true
	}

	out := make([]MyRegistration, 0, len(regs))
	for _, r := range regs {
		out = append(out, MyRegistration{Registration: r, HasFeedback: hasFeedback[r.EventID]})
	}
	return out, nil
}

type RegisterReq struct {
	EventID uint `json:"event_id" binding:"required"`
}

func RegisterEvent(c *gin.Context) {
	self, tenant, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	reg, err := Register(database.DB.WithContext(c.Request.Context()), tenant, self.StudentID, req.EventID, time.Now())
	if err != nil {
		log.Warn("报名失败", "error", err, "student_id", self.StudentID, "event_id", req.EventID)
		response.Fail(c, err)
		return
	}
	log.Info("报名成功", "student_id", self.StudentID, "event_id", req.EventID)
	response.Success(c, gin.H{
		"message":      "Successfully registered for event",
		"registration": reg,
	})
}

func UnregisterEvent(c *gin.Context) {
	self, _, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	eventID, err := tools.ParamID(c, "event_id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid event id"))
		return
	}
	if err := Unregister(database.DB.WithContext(c.Request.Context()), self.StudentID, eventID); err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("取消报名", "student_id", self.StudentID, "event_id", eventID)
	response.Success(c, gin.H{"message": "Successfully unregistered from event"})
}

func MyEvents(c *gin.Context) {
	self, _, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	regs, err := ListOwn(database.DB.WithContext(c.Request.Context()), self.StudentID)
	if err != nil {
		log.Error("查询报名记录失败", "error", err, "student_id", self.StudentID)
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"registrations": regs})
}
