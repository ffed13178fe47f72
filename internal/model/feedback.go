package model

const MaxCommentLength = 500

type Feedback struct {
	Model
	StudentID uint     `gorm:"not null;uniqueIndex:idx_feedback_student_event" json:"student_id"`
	EventID   uint     `gorm:"not null;uniqueIndex:idx_feedback_student_event;index" json:"event_id"`
	Rating    int      `gorm:"not null" json:"rating"`
	Comment   string   `gorm:"type:varchar(500)" json:"comment"`
	Student   *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Event     *Event   `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
