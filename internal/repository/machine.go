package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/praneswara/polygreen/internal/model"
)

type MachineRepository interface {
	Create(ctx context.Context, machine *model.Machine) error
	FindByMachineID(machineID string) (model.Machine, error)
	Deposit(ctx context.Context, machineID string, bottles int64) error
	Empty(ctx context.Context, machineID string, at time.Time) error
	List() ([]model.Machine, error)
	Count() (int64, error)
}

type machine struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machine{db: db}
}

func (r *machine) Create(ctx context.Context, m *model.Machine) error {
	db := GetTx(ctx, r.db)
	err := db.Create(m).Error
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrMachineExists
	}

	return err
}

func (r *machine) FindByMachineID(machineID string) (model.Machine, error) {
	var m model.Machine
	if err := r.db.Where("machine_id = ?", machineID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Machine{}, ErrMachineNotFound
		}
		return model.Machine{}, err
	}
	return m, nil
}

// Deposit applies the capacity check and the increments in one statement.
// Zero rows affected means the bottles would not fit; the caller decides
// whether that is a capacity failure or a missing machine.
func (r *machine) Deposit(ctx context.Context, machineID string, bottles int64) error {
	db := GetTx(ctx, r.db)
	result := db.Exec(
		`UPDATE machines
		 SET current_bottles = current_bottles + ?,
		     total_bottles = total_bottles + ?,
		     is_full = current_bottles + ? >= max_capacity
		 WHERE machine_id = ? AND current_bottles + ? <= max_capacity`,
		bottles, bottles, bottles, machineID, bottles)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *machine) Empty(ctx context.Context, machineID string, at time.Time) error {
	db := GetTx(ctx, r.db)
	result := db.Model(&model.Machine{}).
		Where("machine_id = ?", machineID).
		Updates(map[string]interface{}{
			"current_bottles": 0,
			"is_full":         false,
			"last_emptied":    at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMachineNotFound
	}
	return nil
}

func (r *machine) List() ([]model.Machine, error) {
	var machines []model.Machine
	if err := r.db.Order("id ASC").Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

func (r *machine) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Machine{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
