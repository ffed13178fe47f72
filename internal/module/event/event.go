package event

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

type CreateReq struct {
	Name            string          `json:"name" binding:"required,min=3,max=200"`
	Type            model.EventType `json:"type" binding:"required,oneof=academic cultural sports technical social other"`
	Host            string          `json:"host" binding:"required,min=2,max=200"`
	Description     string          `json:"description" binding:"required,min=10"`
	StartTime       time.Time       `json:"start_time" binding:"required"`
	EndTime         time.Time       `json:"end_time" binding:"required"`
	Location        string          `json:"location" binding:"required,min=2,max=255"`
	PosterURL       string          `json:"poster_url" binding:"omitempty,max=500"`
	MaxParticipants *int            `json:"max_participants" binding:"omitempty,min=1"`
}

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

	event := model.Event{
		CollegeID:       tenant.CollegeID(),
		Name:            req.Name,
		Type:            req.Type,
		Host:            req.Host,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		PosterURL:       req.PosterURL,
		MaxParticipants: req.MaxParticipants,
		Status:          model.EventStatusUpcoming,
	}
	if err := event.Validate(); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&event).Error; err != nil {
		log.Error("创建活动失败", "error", err, "college_id", tenant.CollegeID())
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("活动创建成功", "event_id", event.ID, "college_id", tenant.CollegeID())
	response.Success(c, gin.H{
		"message": "Event created successfully",
		"event":   event,
	})
}

type ListReq struct {
	Type   model.EventType   `form:"type" binding:"omitempty,oneof=academic cultural sports technical social other"`
	Status model.EventStatus `form:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// List 本学院活动，按开始时间倒序
func List(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	q := tenant.Events(database.DB.WithContext(c.Request.Context()))
	if req.Type != "" {
		q = q.Where("event.type = ?", req.Type)
	}
	if req.Status != "" {
		q = q.Where("event.status = ?", req.Status)
	}
	events, total, p, err := page(c, q, "event.start_time DESC")
	if err != nil {
		log.Error("查询活动列表失败", "error", err)
		response.Fail(c, err)
		return
	}
	response.Success(c, tools.PageResult("events", events, total, p))
}

type PublicListReq struct {
	Type      model.EventType `form:"type" binding:"omitempty,oneof=academic cultural sports technical social other"`
	CollegeID uint            `form:"college_id"`
}

// PublicList 未结束的活动，按开始时间正序，无需登录
func PublicList(c *gin.Context) {
	var req PublicListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	q := database.DB.WithContext(c.Request.Context()).Model(&model.Event{}).
		Where("event.status IN ?", []model.EventStatus{model.EventStatusUpcoming, model.EventStatusOngoing})
	if req.Type != "" {
		q = q.Where("event.type = ?", req.Type)
	}
	if req.CollegeID != 0 {
		q = q.Where("event.college_id = ?", req.CollegeID)
	}
	events, total, p, err := page(c, q, "event.start_time ASC")
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, tools.PageResult("events", events, total, p))
}

func page(c *gin.Context, q *gorm.DB, order string) ([]model.Event, int64, tools.Page, error) {
	p := tools.GetPage(c)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, p, response.ErrDatabase.WithOrigin(err)
	}
	events := make([]model.Event, 0, p.PageSize)
	if err := q.Preload("College").
		Order(order).Order("event.id ASC").
		Offset(p.Offset()).Limit(p.PageSize).
		Find(&events).Error; err != nil {
		return nil, 0, p, response.ErrDatabase.WithOrigin(err)
	}
	return events, total, p, nil
}

// Get 活动详情，无需登录
func Get(c *gin.Context) {
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid event id"))
		return
	}
	var event model.Event
	if err := database.DB.WithContext(c.Request.Context()).Preload("College").First(&event, id).Error; err != nil {
		if database.IsNotFound(err) {
			response.Fail(c, response.ErrNotFound.WithTips("Event not found"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"event": event})
}

// UpdateReq 只修改非空字段
type UpdateReq struct {
	Name            *string            `json:"name" binding:"omitempty,min=3,max=200"`
	Type            *model.EventType   `json:"type" binding:"omitempty,oneof=academic cultural sports technical social other"`
	Host            *string            `json:"host" binding:"omitempty,min=2,max=200"`
	Description     *string            `json:"description" binding:"omitempty,min=10"`
	StartTime       *time.Time         `json:"start_time"`
	EndTime         *time.Time         `json:"end_time"`
	Location        *string            `json:"location" binding:"omitempty,min=2,max=255"`
	PosterURL       *string            `json:"poster_url" binding:"omitempty,max=500"`
	MaxParticipants *int               `json:"max_participants" binding:"omitempty,min=1"`
	Status          *model.EventStatus `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

func (r *UpdateReq) apply(e *model.Event) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Host != nil {
		e.Host = *r.Host
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EndTime = *r.EndTime
	}
	if r.Location != nil {
		e.Location = *r.Location
	}
	if r.PosterURL != nil {
		e.PosterURL = *r.PosterURL
	}
	if r.MaxParticipants != nil {
		e.MaxParticipants = r.MaxParticipants
	}
	if r.Status != nil {
		e.Status = *r.Status
	}
}

func Update(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid event id"))
		return
	}
	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	event, err := tenant.Event(db, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	req.apply(event)
	if err := event.Validate(); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}
	if err := db.Save(event).Error; err != nil {
		log.Error("更新活动失败", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("活动已更新", "event_id", id)
	response.Success(c, gin.H{
		"message": "Event updated successfully",
		"event":   event,
	})
}

// Cancel 只修改状态，报名与反馈保留
func Cancel(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid event id"))
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	event, err := tenant.Event(db, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := db.Model(event).Update("status", model.EventStatusCancelled).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("活动已取消", "event_id", id)
	response.Success(c, gin.H{"message": "Event cancelled successfully"})
}
