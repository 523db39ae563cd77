package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/praneswara/polygreen/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	AssignUserID(ctx context.Context, id int64, userID string) error
	FindByUserID(userID string) (model.User, error)
	FindByMobile(mobile string) (model.User, error)
	AddPointsAndBottles(ctx context.Context, userID string, points, bottles int64) error
	DeductPoints(ctx context.Context, userID string, points int64) error
	List() ([]model.User, error)
	Count() (int64, error)
}

type user struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &user{db: db}
}

func (r *user) Create(ctx context.Context, u *model.User) error {
	db := GetTx(ctx, r.db)
	err := db.Create(u).Error
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}

	return err
}

func (r *user) AssignUserID(ctx context.Context, id int64, userID string) error {
	db := GetTx(ctx, r.db)
	return db.Model(&model.User{}).
		Where("id = ?", id).
		Update("user_id", userID).Error
}

func (r *user) FindByUserID(userID string) (model.User, error) {
	var u model.User
	if err := r.db.Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *user) FindByMobile(mobile string) (model.User, error) {
	var u model.User
	if err := r.db.Where("mobile = ?", mobile).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *user) AddPointsAndBottles(ctx context.Context, userID string, points, bottles int64) error {
	db := GetTx(ctx, r.db)
	result := db.Exec(
		`UPDATE users SET points = points + ?, bottles = bottles + ? WHERE user_id = ?`,
		points, bottles, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// DeductPoints is a conditional decrement. The balance check lives inside the
// statement so concurrent redemptions cannot drive the balance negative.
func (r *user) DeductPoints(ctx context.Context, userID string, points int64) error {
	db := GetTx(ctx, r.db)
	result := db.Exec(
		`UPDATE users SET points = points - ? WHERE user_id = ? AND points >= ?`,
		points, userID, points)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *user) List() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *user) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
