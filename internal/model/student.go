package model

type Student struct {
	Model
	Name          string   `gorm:"type:varchar(100);not null;index" json:"name"`
	Email         string   `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Password      string   `gorm:"type:varchar(255);not null" json:"-"`
	StudentNumber string   `gorm:"type:varchar(50);uniqueIndex;not null" json:"student_number"` // 学号
	CollegeID     uint     `gorm:"not null;index" json:"college_id"`
	College       *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
}
