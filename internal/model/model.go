package model

import (
	"time"

	"gorm.io/gorm"
)

type Model struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// All 自动迁移的模型列表
func All() []any {
	return []any{
		&College{},
		&Admin{},
		&Student{},
		&Event{},
		&Registration{},
		&Feedback{},
	}
}
