package model

import "time"

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationAttended   RegistrationStatus = "attended"
	RegistrationAbsent     RegistrationStatus = "absent"
)

// Markable 管理员可设置的考勤状态
func (s RegistrationStatus) Markable() bool {
	return s == RegistrationAttended || s == RegistrationAbsent
}

type Registration struct {
	Model
	StudentID    uint               `gorm:"not null;uniqueIndex:idx_registration_student_event" json:"student_id"`
	EventID      uint               `gorm:"not null;uniqueIndex:idx_registration_student_event;index" json:"event_id"`
	Status       RegistrationStatus `gorm:"type:varchar(20);not null;default:registered;index" json:"status"`
	RegisteredAt time.Time          `gorm:"not null" json:"registered_at"`
	Student      *Student           `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Event        *Event             `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
