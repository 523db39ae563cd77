package model

type RewardBrand struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(120)" json:"name"`
	MinPoints int64  `gorm:"not null;default:100" json:"min_points"`
	Active    bool   `gorm:"not null;default:true" json:"active"`
}

func (RewardBrand) TableName() string {
	return "reward_brands"
}
