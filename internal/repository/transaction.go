package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/praneswara/polygreen/internal/model"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	ListByUserID(userID string, limit int) ([]model.Transaction, error)
	ListByMachineID(machineID string) ([]model.Transaction, error)
	List(limit int) ([]model.Transaction, error)
	Count() (int64, error)
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

func (t *transaction) Create(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, t.db)
	return db.Create(tx).Error
}

func (t *transaction) ListByUserID(userID string, limit int) ([]model.Transaction, error) {
	var txs []model.Transaction
	query := t.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (t *transaction) ListByMachineID(machineID string) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := t.db.Where("machine_id = ?", machineID).Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (t *transaction) List(limit int) ([]model.Transaction, error) {
	var txs []model.Transaction
	query := t.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (t *transaction) Count() (int64, error) {
	var count int64
	if err := t.db.Model(&model.Transaction{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
