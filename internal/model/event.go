package model

import (
	"errors"
	"time"
)

type EventType string

const (
	EventTypeAcademic  EventType = "academic"
	EventTypeCultural  EventType = "cultural"
	EventTypeSports    EventType = "sports"
	EventTypeTechnical EventType = "technical"
	EventTypeSocial    EventType = "social"
	EventTypeOther     EventType = "other"
)

// EventTypes 固定顺序，报表按此顺序输出
var EventTypes = []EventType{
	EventTypeAcademic,
	EventTypeCultural,
	EventTypeSports,
	EventTypeTechnical,
	EventTypeSocial,
	EventTypeOther,
}

func (t EventType) Valid() bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

type Event struct {
	Model
	CollegeID       uint        `gorm:"not null;index" json:"college_id"`
	Name            string      `gorm:"type:varchar(200);not null" json:"name"`
	Type            EventType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Host            string      `gorm:"type:varchar(200);not null" json:"host"`
	Description     string      `gorm:"type:text;not null" json:"description"`
	StartTime       time.Time   `gorm:"not null;index" json:"start_time"`
	EndTime         time.Time   `gorm:"not null" json:"end_time"`
	Location        string      `gorm:"type:varchar(255);not null" json:"location"`
	PosterURL       string      `gorm:"type:varchar(500)" json:"poster_url"`
	MaxParticipants *int        `json:"max_participants"` // nil 表示不限
	Status          EventStatus `gorm:"type:varchar(20);not null;default:upcoming;index" json:"status"`
	College         *College    `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
}

func (e *Event) Validate() error {
	if !e.Type.Valid() {
		return errors.New("invalid event type")
	}
	if e.Status != "" && !e.Status.Valid() {
		return errors.New("invalid event status")
	}
	if !e.EndTime.After(e.StartTime) {
		return errors.New("end time must be after start time")
	}
	if e.MaxParticipants != nil && *e.MaxParticipants < 1 {
		return errors.New("max_participants must be positive")
	}
	return nil
}
