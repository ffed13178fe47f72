package report

import (
	"campus-events/internal/global/scope"
	"campus-events/internal/model"

	"gorm.io/gorm"
)

// regCount 报名数与到场数
type regCount struct {
	Key      uint  `gorm:"column:k"`
	Total    int64 `gorm:"column:total"`
	Attended int64 `gorm:"column:attended"`
}

// ratingSum 反馈条数与评分总和
type ratingSum struct {
	Key   uint  `gorm:"column:k"`
	Count int64 `gorm:"column:cnt"`
	Sum   int64 `gorm:"column:rating_sum"`
}

const attendedCase = "COALESCE(SUM(CASE WHEN registration.status = ? THEN 1 ELSE 0 END), 0) AS attended"

// registrationsBy 按 registration 的某列分组统计报名与到场
func registrationsBy(q *gorm.DB, column string) (map[uint]regCount, error) {
	var rows []regCount
	err := q.Select("registration."+column+" AS k, COUNT(*) AS total, "+attendedCase, model.RegistrationAttended).
		Group("registration." + column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]regCount, len(rows))
	for _, r := range rows {
		m[r.Key] = r
	}
	return m, nil
}

// feedbacksBy 按 feedback 的某列分组统计条数与评分总和
func feedbacksBy(q *gorm.DB, column string) (map[uint]ratingSum, error) {
	var rows []ratingSum
	err := q.Select("feedback." + column + " AS k, COUNT(*) AS cnt, COALESCE(SUM(feedback.rating), 0) AS rating_sum").
		Group("feedback." + column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]ratingSum, len(rows))
	for _, r := range rows {
		m[r.Key] = r
	}
	return m, nil
}

// typeRegCount 按活动类型统计报名
type typeRegCount struct {
	Type     model.EventType `gorm:"column:type"`
	Events   int64           `gorm:"column:events"`
	Total    int64           `gorm:"column:total"`
	Attended int64           `gorm:"column:attended"`
	Count    int64           `gorm:"column:cnt"`
	Sum      int64           `gorm:"column:rating_sum"`
}

func eventsByType(db *gorm.DB, t scope.Tenant) (map[model.EventType]int64, error) {
	var rows []typeRegCount
	if err := t.Events(db).Select("event.type AS type, COUNT(*) AS events").Group("event.type").Scan(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[model.EventType]int64, len(rows))
	for _, r := range rows {
		m[r.Type] = r.Events
	}
	return m, nil
}

func registrationsByType(db *gorm.DB, t scope.Tenant) (map[model.EventType]typeRegCount, error) {
	var rows []typeRegCount
	err := t.Registrations(db).
		Joins("JOIN event ON event.id = registration.event_id").
		Select("event.type AS type, COUNT(*) AS total, "+attendedCase, model.RegistrationAttended).
		Group("event.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[model.EventType]typeRegCount, len(rows))
	for _, r := range rows {
		m[r.Type] = r
	}
	return m, nil
}

func feedbacksByType(db *gorm.DB, t scope.Tenant) (map[model.EventType]typeRegCount, error) {
	var rows []typeRegCount
	err := t.Feedbacks(db).
		Joins("JOIN event ON event.id = feedback.event_id").
		Select("event.type AS type, COUNT(*) AS cnt, COALESCE(SUM(feedback.rating), 0) AS rating_sum").
		Group("event.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[model.EventType]typeRegCount, len(rows))
	for _, r := range rows {
		m[r.Type] = r
	}
	return m, nil
}

// totals 租户内全部报名与反馈的汇总
func totals(db *gorm.DB, t scope.Tenant) (reg regCount, fb ratingSum, err error) {
	err = t.Registrations(db).
		Select("COUNT(*) AS total, "+attendedCase, model.RegistrationAttended).
		Scan(&reg).Error
	if err != nil {
		return
	}
	err = t.Feedbacks(db).
		Select("COUNT(*) AS cnt, COALESCE(SUM(feedback.rating), 0) AS rating_sum").
		Scan(&fb).Error
	return
}
