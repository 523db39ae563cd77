package model

import "time"

type TxType string

const (
	TxTypeEarn   TxType = "earn"
	TxTypeRedeem TxType = "redeem"
)

// Transaction is the append-only ledger. Rows are never updated or deleted.
type Transaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(16);index;not null" json:"user_id"`
	Type      TxType    `gorm:"type:varchar(10);not null" json:"type"`
	Points    int64     `gorm:"not null;default:0" json:"points"`
	Bottles   int64     `gorm:"not null;default:0" json:"bottles"`
	MachineID *string   `gorm:"column:machine_id;type:varchar(64);index" json:"machine_id"`
	BrandID   *int64    `gorm:"column:brand_id" json:"brand_id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
