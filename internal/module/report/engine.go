// Package report 学院维度的统计报表。
//
// 所有报表函数只读，入参为数据库、租户与选项；与时间相关的报表显式接收 asOf，
// HTTP 层默认传入当前时间。比率与平均值保留两位小数，分母为 0 时结果为 0。
package report

import (
	"cmp"
	"slices"
	"time"

	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/tools"

	"gorm.io/gorm"
)

// 排序维度
const (
	SortAttended      = "attended"
	SortParticipation = "participation"
	SortFeedback      = "feedback"
)

const MaxTrendMonths = 60

type PopularEventsOptions struct {
	Type     model.EventType
	DateFrom *time.Time // 含
	DateTo   *time.Time // 不含
	Limit    int        // <=0 不截断
}

type EventStats struct {
	model.Event
	TotalRegistrations int64   `json:"totalRegistrations"`
	AttendedCount      int64   `json:"attendedCount"`
	AttendanceRate     float64 `json:"attendanceRate"`
	AverageRating      float64 `json:"averageRating"`
	FeedbackCount      int64   `json:"feedbackCount"`
}

type PopularEventsResult struct {
	Events []EventStats `json:"events"`
	Total  int          `json:"total"`
}

// PopularEvents 按报名人数降序；人数相同时保持开始时间倒序
func PopularEvents(db *gorm.DB, t scope.Tenant, opts PopularEventsOptions) (*PopularEventsResult, error) {
	if opts.Type != "" && !opts.Type.Valid() {
		return nil, response.ErrInvalidRequest.WithTips("invalid event type")
	}

	q := t.Events(db)
	if opts.Type != "" {
		q = q.Where("event.type = ?", opts.Type)
	}
	if opts.DateFrom != nil {
		q = q.Where("event.start_time >= ?", *opts.DateFrom)
	}
	if opts.DateTo != nil {
		q = q.Where("event.start_time < ?", *opts.DateTo)
	}
	var events []model.Event
	if err := q.Order("event.start_time DESC").Order("event.id DESC").Find(&events).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	result := &PopularEventsResult{Events: make([]EventStats, 0, len(events)), Total: len(events)}
	if len(events) == 0 {
		return result, nil
	}

	ids := make([]uint, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	regs, err := registrationsBy(t.Registrations(db).Where("registration.event_id IN ?", ids), "event_id")
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	fbs, err := feedbacksBy(t.Feedbacks(db).Where("feedback.event_id IN ?", ids), "event_id")
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	for _, e := range events {
		r, f := regs[e.ID], fbs[e.ID]
		result.Events = append(result.Events, EventStats{
			Event:              e,
			TotalRegistrations: r.Total,
			AttendedCount:      r.Attended,
			AttendanceRate:     tools.Percent(r.Attended, r.Total),
			AverageRating:      tools.Mean(f.Sum, f.Count),
			FeedbackCount:      f.Count,
		})
	}
	slices.SortStableFunc(result.Events, func(a, b EventStats) int {
		return cmp.Compare(b.TotalRegistrations, a.TotalRegistrations)
	})
	result.Events = truncate(result.Events, opts.Limit)
	return result, nil
}

type StudentStats struct {
	ID                uint    `json:"id" excel:"Student ID"`
	Name              string  `json:"name" excel:"Name"`
	Email             string  `json:"email" excel:"Email"`
	StudentNumber     string  `json:"student_number" excel:"Student Number"`
	TotalEvents       int64   `json:"totalEvents" excel:"Registered Events"`
	AttendedEvents    int64   `json:"attendedEvents" excel:"Attended Events"`
	ParticipationRate float64 `json:"participationRate" excel:"Participation Rate (%)"`
	FeedbackCount     int64   `json:"feedbackCount" excel:"Feedbacks"`
}

type TopStudent struct {
	StudentStats
	AverageRatingGiven float64 `json:"averageRatingGiven" excel:"Average Rating Given"`
}

type StudentParticipationResult struct {
	Students []StudentStats `json:"students"`
	Total    int            `json:"total"`
}

type TopStudentsResult struct {
	TopStudents []TopStudent `json:"topStudents"`
	Criteria    string       `json:"criteria"`
	Total       int          `json:"total"`
}

// StudentParticipation 学生参与度，按 sortBy 降序，相同时按姓名升序
func StudentParticipation(db *gorm.DB, t scope.Tenant, limit int, sortBy string) (*StudentParticipationResult, error) {
	key, err := studentSortKey(sortBy)
	if err != nil {
		return nil, err
	}
	all, err := studentStats(db, t)
	if err != nil {
		return nil, err
	}

	students := make([]StudentStats, len(all))
	for i, s := range all {
		students[i] = s.StudentStats
	}
	slices.SortStableFunc(students, func(a, b StudentStats) int { return key(b) - key(a) })
	return &StudentParticipationResult{Students: truncate(students, limit), Total: len(all)}, nil
}

// TopStudents 与 StudentParticipation 相同的统计，另附学生给出的平均评分
func TopStudents(db *gorm.DB, t scope.Tenant, limit int, criteria string) (*TopStudentsResult, error) {
	key, err := studentSortKey(criteria)
	if err != nil {
		return nil, err
	}
	all, err := studentStats(db, t)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(all, func(a, b TopStudent) int { return key(b.StudentStats) - key(a.StudentStats) })
	return &TopStudentsResult{TopStudents: truncate(all, limit), Criteria: criteria, Total: len(all)}, nil
}

// studentSortKey 返回比较用的函数，返回值只用于比较大小
func studentSortKey(by string) (func(StudentStats) int, error) {
	switch by {
	case SortAttended:
		return func(s StudentStats) int { return int(s.AttendedEvents) }, nil
	case SortParticipation:
		// 两位小数放大为整数比较
		return func(s StudentStats) int { return int(s.ParticipationRate*100 + 0.5) }, nil
	case SortFeedback:
		return func(s StudentStats) int { return int(s.FeedbackCount) }, nil
	}
	return nil, response.ErrInvalidRequest.WithTips("sort_by must be one of attended, participation, feedback")
}

// studentStats 租户内所有学生的统计，按姓名升序
func studentStats(db *gorm.DB, t scope.Tenant) ([]TopStudent, error) {
	var students []model.Student
	if err := t.Students(db).Order("student.name ASC").Order("student.id ASC").Find(&students).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if len(students) == 0 {
		return []TopStudent{}, nil
	}

	regs, err := registrationsBy(t.Registrations(db), "student_id")
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	fbs, err := feedbacksBy(t.Feedbacks(db), "student_id")
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	result := make([]TopStudent, 0, len(students))
	for _, s := range students {
		r, f := regs[s.ID], fbs[s.ID]
		result = append(result, TopStudent{
			StudentStats: StudentStats{
				ID:                s.ID,
				Name:              s.Name,
				Email:             s.Email,
				StudentNumber:     s.StudentNumber,
				TotalEvents:       r.Total,
				AttendedEvents:    r.Attended,
				ParticipationRate: tools.Percent(r.Attended, r.Total),
				FeedbackCount:     f.Count,
			},
			AverageRatingGiven: tools.Mean(f.Sum, f.Count),
		})
	}
	return result, nil
}

type TypeAnalytics struct {
	Type                  model.EventType `json:"type" excel:"Type"`
	TotalEvents           int64           `json:"totalEvents" excel:"Events"`
	TotalRegistrations    int64           `json:"totalRegistrations" excel:"Registrations"`
	TotalAttended         int64           `json:"totalAttended" excel:"Attended"`
	AverageAttendanceRate float64         `json:"averageAttendanceRate" excel:"Attendance Rate (%)"`
	TotalFeedbacks        int64           `json:"totalFeedbacks" excel:"Feedbacks"`
	AverageRating         float64         `json:"averageRating" excel:"Average Rating"`
}

// EventTypeAnalytics 固定返回六种类型，没有活动的类型各项为 0
func EventTypeAnalytics(db *gorm.DB, t scope.Tenant) ([]TypeAnalytics, error) {
	events, err := eventsByType(db, t)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	regs, err := registrationsByType(db, t)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	fbs, err := feedbacksByType(db, t)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	result := make([]TypeAnalytics, 0, len(model.EventTypes))
	for _, typ := range model.EventTypes {
		r, f := regs[typ], fbs[typ]
		result = append(result, TypeAnalytics{
			Type:                  typ,
			TotalEvents:           events[typ],
			TotalRegistrations:    r.Total,
			TotalAttended:         r.Attended,
			AverageAttendanceRate: tools.Percent(r.Attended, r.Total),
			TotalFeedbacks:        f.Count,
			AverageRating:         tools.Mean(f.Sum, f.Count),
		})
	}
	return result, nil
}

type MonthTrend struct {
	Month              string  `json:"month" excel:"Month"` // January 2025
	Key                string  `json:"key" excel:"-"`       // 2025-01
	TotalEvents        int64   `json:"totalEvents" excel:"Events"`
	TotalRegistrations int64   `json:"totalRegistrations" excel:"Registrations"`
	TotalAttended      int64   `json:"totalAttended" excel:"Attended"`
	AttendanceRate     float64 `json:"attendanceRate" excel:"Attendance Rate (%)"`
}

// AttendanceTrends 最近 months 个自然月（含 asOf 所在月），从早到晚排列。
// 月份边界使用 asOf 的时区。
func AttendanceTrends(db *gorm.DB, t scope.Tenant, months int, asOf time.Time) ([]MonthTrend, error) {
	if months < 1 || months > MaxTrendMonths {
		return nil, response.ErrInvalidRequest.WithTips("months must be between 1 and 60")
	}
	current := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())

	trends := make([]MonthTrend, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var totalEvents int64
		if err := t.Events(db).
			Where("event.start_time >= ? AND event.start_time < ?", start, end).
			Count(&totalEvents).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		var r regCount
		if err := t.Registrations(db).
			Joins("JOIN event ON event.id = registration.event_id").
			Where("event.start_time >= ? AND event.start_time < ?", start, end).
			Select("COUNT(*) AS total, "+attendedCase, model.RegistrationAttended).
			Scan(&r).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}

		trends = append(trends, MonthTrend{
			Month:              start.Format("January 2006"),
			Key:                start.Format("2006-01"),
			TotalEvents:        totalEvents,
			TotalRegistrations: r.Total,
			TotalAttended:      r.Attended,
			AttendanceRate:     tools.Percent(r.Attended, r.Total),
		})
	}
	return trends, nil
}

type Dashboard struct {
	TotalStudents         int64   `json:"totalStudents" excel:"Students"`
	TotalEvents           int64   `json:"totalEvents" excel:"Events"`
	TotalRegistrations    int64   `json:"totalRegistrations" excel:"Registrations"`
	TotalFeedbacks        int64   `json:"totalFeedbacks" excel:"Feedbacks"`
	ActiveStudents        int64   `json:"activeStudents" excel:"Active Students"`
	UpcomingEvents        int64   `json:"upcomingEvents" excel:"Upcoming Events"`
	AverageAttendanceRate float64 `json:"averageAttendanceRate" excel:"Attendance Rate (%)"`
	AverageRating         float64 `json:"averageRating" excel:"Average Rating"`
}

// DashboardStats 学院总览；upcomingEvents 只统计状态为 upcoming 且开始时间晚于 asOf 的活动
func DashboardStats(db *gorm.DB, t scope.Tenant, asOf time.Time) (*Dashboard, error) {
	d := &Dashboard{}
	if err := t.Students(db).Count(&d.TotalStudents).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if err := t.Events(db).Count(&d.TotalEvents).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	reg, fb, err := totals(db, t)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if err := t.Registrations(db).
		Where("registration.status = ?", model.RegistrationAttended).
		Distinct("registration.student_id").
		Count(&d.ActiveStudents).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if err := t.Events(db).
		Where("event.status = ? AND event.start_time > ?", model.EventStatusUpcoming, asOf).
		Count(&d.UpcomingEvents).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	d.TotalRegistrations = reg.Total
	d.TotalFeedbacks = fb.Count
	d.AverageAttendanceRate = tools.Percent(reg.Attended, reg.Total)
	d.AverageRating = tools.Mean(fb.Sum, fb.Count)
	return d, nil
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
