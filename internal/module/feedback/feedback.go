package feedback

import (
	"time"

	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/tools"

	"gorm.io/gorm"
)

var (
	errAlreadySubmitted = response.ErrAlreadyExists.WithTips("Feedback already submitted for this event")
	errFeedbackNotFound = response.ErrNotFound.WithTips("Feedback not found")
)

// Submit 学生对已到场的活动提交评价，每人每活动一条
func Submit(db *gorm.DB, t scope.Tenant, studentID, eventID uint, rating int, comment string) (*model.Feedback, error) {
	if _, err := t.Event(db, eventID); err != nil {
		return nil, err
	}

	var attended int64
	if err := db.Model(&model.Registration{}).
		Where("student_id = ? AND event_id = ? AND status = ?", studentID, eventID, model.RegistrationAttended).
		Count(&attended).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if attended == 0 {
		return nil, response.ErrNotAttended
	}

	var exists int64
	if err := db.Model(&model.Feedback{}).
		Where("student_id = ? AND event_id = ?", studentID, eventID).
		Count(&exists).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if exists > 0 {
		return nil, errAlreadySubmitted
	}

	fb := model.Feedback{StudentID: studentID, EventID: eventID, Rating: rating, Comment: comment}
	if err := insertFeedback(db, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

func insertFeedback(db *gorm.DB, fb *model.Feedback) error {
	if err := db.Create(fb).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return errAlreadySubmitted
		}
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// own 读取反馈并确认属于该学生
func own(db *gorm.DB, studentID, feedbackID uint) (*model.Feedback, error) {
	var fb model.Feedback
	if err := db.First(&fb, feedbackID).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, errFeedbackNotFound
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if fb.StudentID != studentID {
		return nil, response.ErrForbidden
	}
	return &fb, nil
}

// Update 只修改非空字段
func Update(db *gorm.DB, studentID, feedbackID uint, rating *int, comment *string) (*model.Feedback, error) {
	fb, err := own(db, studentID, feedbackID)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if rating != nil {
		updates["rating"] = *rating
	}
	if comment != nil {
		updates["comment"] = *comment
	}
	if len(updates) > 0 {
		if err := db.Model(fb).Updates(updates).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
	}
	if err := db.Preload("Event").First(fb, fb.ID).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return fb, nil
}

// Delete 物理删除，之后可重新提交
func Delete(db *gorm.DB, studentID, feedbackID uint) error {
	fb, err := own(db, studentID, feedbackID)
	if err != nil {
		return err
	}
	if err := db.Unscoped().Delete(fb).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

type EventBrief struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Summary 单个活动的评分汇总
type Summary struct {
	Event              EventBrief       `json:"event"`
	AverageRating      float64          `json:"averageRating"`
	TotalFeedbacks     int64            `json:"totalFeedbacks"`
	RatingDistribution map[int]int64    `json:"ratingDistribution"`
	Feedbacks          []model.Feedback `json:"feedbacks"`
}

// Average 公开接口，不区分学院；分布总是包含 1 到 5 分
func Average(db *gorm.DB, eventID uint) (*Summary, error) {
	var event model.Event
	if err := db.First(&event, eventID).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, response.ErrNotFound.WithTips("Event not found")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	feedbacks := make([]model.Feedback, 0)
	if err := db.Preload("Student").
		Where("event_id = ?", eventID).
		Order("created_at DESC").Order("id DESC").
		Find(&feedbacks).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	dist := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum int64
	for _, f := range feedbacks {
		sum += int64(f.Rating)
		dist[f.Rating]++
	}
	return &Summary{
		Event: EventBrief{
			ID:        event.ID,
			Name:      event.Name,
			StartTime: event.StartTime,
			EndTime:   event.EndTime,
		},
		AverageRating:      tools.Mean(sum, int64(len(feedbacks))),
		TotalFeedbacks:     int64(len(feedbacks)),
		RatingDistribution: dist,
		Feedbacks:          feedbacks,
	}, nil
}

// List 本学院活动下的反馈，eventID 为 0 时不过滤
func List(db *gorm.DB, t scope.Tenant, eventID uint, p tools.Page) ([]model.Feedback, int64, error) {
	q := t.Feedbacks(db)
	if eventID != 0 {
		q = q.Where("feedback.event_id = ?", eventID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, response.ErrDatabase.WithOrigin(err)
	}
	feedbacks := make([]model.Feedback, 0, p.PageSize)
	if err := q.Preload("Student").Preload("Event").
		Order("feedback.created_at DESC").Order("feedback.id DESC").
		Offset(p.Offset()).Limit(p.PageSize).
		Find(&feedbacks).Error; err != nil {
		return nil, 0, response.ErrDatabase.WithOrigin(err)
	}
	return feedbacks, total, nil
}
