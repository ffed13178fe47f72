package attendance

import (
	"cmp"
	"slices"
	"time"

	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/tools"

	"gorm.io/gorm"
)

// 批量考勤单项失败的原因
const (
	TagInvalidStatus = "invalid_status"
	TagNotRegistered = "not_registered"
	TagInternal      = "internal"
)

var (
	errInvalidStatus = response.ErrInvalidRequest.WithTips("status must be attended or absent")
	errNotRegistered = response.ErrNotFound.WithTips("Student is not registered for this event")
)

type BulkItem struct {
	StudentID uint                     `json:"student_id"`
	Status    model.RegistrationStatus `json:"status"`
}

type BulkResult struct {
	StudentID uint                     `json:"student_id"`
	Status    model.RegistrationStatus `json:"status,omitempty"`
	Success   bool                     `json:"success"`
	Error     string                   `json:"error,omitempty"`
}

// Mark 设置单个学生在某活动的考勤状态。
// 同一报名的并发标记没有版本控制，后写入者生效。
func Mark(db *gorm.DB, t scope.Tenant, studentID, eventID uint, status model.RegistrationStatus) (*model.Registration, error) {
	if !status.Markable() {
		return nil, errInvalidStatus
	}
	if _, err := t.Event(db, eventID); err != nil {
		return nil, err
	}
	if _, err := t.Student(db, studentID); err != nil {
		return nil, err
	}

	reg, err := findRegistration(db, t, studentID, eventID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errNotRegistered
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if err := setStatus(db, reg, status); err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return reg, nil
}

// MarkBulk 逐项标记，单项失败不影响其他项；结果与输入一一对应
func MarkBulk(db *gorm.DB, t scope.Tenant, eventID uint, items []BulkItem) ([]BulkResult, error) {
	if _, err := t.Event(db, eventID); err != nil {
		return nil, err
	}

	results := make([]BulkResult, 0, len(items))
	for _, item := range items {
		res := BulkResult{StudentID: item.StudentID}
		if !item.Status.Markable() {
			res.Error = TagInvalidStatus
			results = append(results, res)
			continue
		}

		reg, err := findRegistration(db, t, item.StudentID, eventID)
		switch {
		case database.IsNotFound(err):
			res.Error = TagNotRegistered
		case err != nil:
			log.Error("批量考勤查询报名失败", "error", err, "event_id", eventID, "student_id", item.StudentID)
			res.Error = TagInternal
		default:
			if err := setStatus(db, reg, item.Status); err != nil {
				log.Error("批量考勤更新失败", "error", err, "event_id", eventID, "student_id", item.StudentID)
				res.Error = TagInternal
			} else {
				res.Status = item.Status
				res.Success = true
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func findRegistration(db *gorm.DB, t scope.Tenant, studentID, eventID uint) (*model.Registration, error) {
	var reg model.Registration
	err := t.Registrations(db).
		Where("registration.student_id = ? AND registration.event_id = ?", studentID, eventID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func setStatus(db *gorm.DB, reg *model.Registration, status model.RegistrationStatus) error {
	if err := db.Model(reg).Update("status", status).Error; err != nil {
		return err
	}
	reg.Status = status
	return nil
}

type EventBrief struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Location  string    `json:"location"`
}

type ReportSummary struct {
	TotalRegistered      int64   `json:"totalRegistered"`
	Attended             int64   `json:"attended"`
	Absent               int64   `json:"absent"`
	Pending              int64   `json:"pending"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

type EventReport struct {
	Event         EventBrief           `json:"event"`
	Summary       ReportSummary        `json:"summary"`
	Registrations []model.Registration `json:"registrations"`
}

// Report 单个活动的考勤汇总，名单按状态、学生姓名排序
func Report(db *gorm.DB, t scope.Tenant, eventID uint) (*EventReport, error) {
	event, err := t.Event(db, eventID)
	if err != nil {
		return nil, err
	}

	var regs []model.Registration
	if err := t.Registrations(db).
		Where("registration.event_id = ?", eventID).
		Preload("Student").
		Find(&regs).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	slices.SortStableFunc(regs, func(a, b model.Registration) int {
		return cmp.Or(
			cmp.Compare(a.Status, b.Status),
			cmp.Compare(studentName(a), studentName(b)),
		)
	})

	summary := ReportSummary{TotalRegistered: int64(len(regs))}
	for _, r := range regs {
		switch r.Status {
		case model.RegistrationAttended:
			summary.Attended++
		case model.RegistrationAbsent:
			summary.Absent++
		case model.RegistrationRegistered:
			summary.Pending++
		}
	}
	summary.AttendancePercentage = tools.Percent(summary.Attended, summary.TotalRegistered)

	return &EventReport{
		Event: EventBrief{
			ID:        event.ID,
			Name:      event.Name,
			StartTime: event.StartTime,
			EndTime:   event.EndTime,
			Location:  event.Location,
		},
		Summary:       summary,
		Registrations: regs,
	}, nil
}

func studentName(r model.Registration) string {
	if r.Student == nil {
		return ""
	}
	return r.Student.Name
}

type StudentBrief struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	StudentNumber string `json:"student_number"`
}

type HistorySummary struct {
	TotalEvents    int64   `json:"totalEvents"`
	AttendedEvents int64   `json:"attendedEvents"`
	AttendanceRate float64 `json:"attendanceRate"`
}

type StudentHistory struct {
	Student StudentBrief         `json:"student"`
	Summary HistorySummary       `json:"summary"`
	History []model.Registration `json:"history"`
}

// History 学生在本学院活动中的考勤记录，按活动开始时间倒序
func History(db *gorm.DB, t scope.Tenant, studentID uint) (*StudentHistory, error) {
	student, err := t.Student(db, studentID)
	if err != nil {
		return nil, err
	}

	var regs []model.Registration
	if err := t.Registrations(db).
		Where("registration.student_id = ?", studentID).
		Preload("Event").
		Find(&regs).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	slices.SortStableFunc(regs, func(a, b model.Registration) int {
		return eventStart(b).Compare(eventStart(a))
	})

	summary := HistorySummary{TotalEvents: int64(len(regs))}
	for _, r := range regs {
		if r.Status == model.RegistrationAttended {
			summary.AttendedEvents++
		}
	}
	summary.AttendanceRate = tools.Percent(summary.AttendedEvents, summary.TotalEvents)

	return &StudentHistory{
		Student: StudentBrief{
			ID:            student.ID,
			Name:          student.Name,
			Email:         student.Email,
			StudentNumber: student.StudentNumber,
		},
		Summary: summary,
		History: regs,
	}, nil
}

func eventStart(r model.Registration) time.Time {
	if r.Event == nil {
		return time.Time{}
	}
	return r.Event.StartTime
}
