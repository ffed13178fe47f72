package model

type College struct {
	Model
	Name    string `gorm:"type:varchar(191);uniqueIndex;not null" json:"name"`
	Address string `gorm:"type:varchar(255);not null" json:"address"`
}
