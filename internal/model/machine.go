package model

import "time"

type Machine struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	MachineID      string     `gorm:"column:machine_id;type:varchar(64);uniqueIndex" json:"machine_id"`
	APIKey         string     `gorm:"column:api_key;type:varchar(64)" json:"-"`
	Name           string     `gorm:"type:varchar(120)" json:"name"`
	City           string     `gorm:"type:varchar(120)" json:"city"`
	Lat            float64    `json:"lat"`
	Lng            float64    `json:"lng"`
	CurrentBottles int64      `gorm:"not null;default:0" json:"current_bottles"`
	MaxCapacity    int64      `gorm:"not null;default:100" json:"max_capacity"`
	TotalBottles   int64      `gorm:"not null;default:0" json:"total_bottles"`
	IsFull         bool       `gorm:"not null;default:false" json:"is_full"`
	LastEmptied    *time.Time `json:"last_emptied"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Machine) TableName() string {
	return "machines"
}

func (m Machine) AvailableSpace() int64 {
	if space := m.MaxCapacity - m.CurrentBottles; space > 0 {
		return space
	}
	return 0
}
