package model

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"column:user_id;type:varchar(16);uniqueIndex" json:"user_id"`
	Name         string    `gorm:"type:varchar(120)" json:"name"`
	Mobile       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Points       int64     `gorm:"not null;default:0" json:"points"`
	Bottles      int64     `gorm:"not null;default:0" json:"bottles"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
