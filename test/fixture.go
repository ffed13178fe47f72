package test

import (
	"fmt"
	"testing"
	"time"

	"campus-events/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func College(t *testing.T, db *gorm.DB, name string) *model.College {
	t.Helper()
	c := &model.College{Name: name, Address: name + " campus"}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Student 学号与邮箱由姓名派生，同一测试库中姓名需唯一
func Student(t *testing.T, db *gorm.DB, collegeID uint, name string) *model.Student {
	t.Helper()
	s := &model.Student{
		Name:          name,
		Email:         fmt.Sprintf("%s@%d.edu", name, collegeID),
		Password:      "x",
		StudentNumber: fmt.Sprintf("%d-%s", collegeID, name),
		CollegeID:     collegeID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

// Event 创建一小时的活动，可通过 opts 修改字段
func Event(t *testing.T, db *gorm.DB, collegeID uint, name string, start time.Time, opts ...func(*model.Event)) *model.Event {
	t.Helper()
	e := &model.Event{
		CollegeID:   collegeID,
		Name:        name,
		Type:        model.EventTypeAcademic,
		Host:        "host",
		Description: "description of " + name,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Location:    "hall",
		Status:      model.EventStatusUpcoming,
	}
	for _, opt := range opts {
		opt(e)
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func Register(t *testing.T, db *gorm.DB, studentID, eventID uint, status model.RegistrationStatus) *model.Registration {
	t.Helper()
	r := &model.Registration{
		StudentID:    studentID,
		EventID:      eventID,
		Status:       status,
		RegisteredAt: time.Now(),
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func Feedback(t *testing.T, db *gorm.DB, studentID, eventID uint, rating int) *model.Feedback {
	t.Helper()
	f := &model.Feedback{StudentID: studentID, EventID: eventID, Rating: rating}
	require.NoError(t, db.Create(f).Error)
	return f
}
