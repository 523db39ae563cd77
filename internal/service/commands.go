package service

import (
	"time"

	"github.com/praneswara/polygreen/internal/model"
)

type RegisterCommand struct {
	Name     string
	Mobile   string
	Password string
}

type LoginCommand struct {
	Mobile   string
	Password string
}

// PublicUser is the user shape returned to clients. The password hash never
// leaves the service layer.
type PublicUser struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Points    int64     `json:"points"`
	Bottles   int64     `json:"bottles"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPublicUser(u model.User) PublicUser {
	return PublicUser{
		UserID:    u.UserID,
		Name:      u.Name,
		Mobile:    u.Mobile,
		Points:    u.Points,
		Bottles:   u.Bottles,
		CreatedAt: u.CreatedAt,
	}
}

type LoginResult struct {
	AccessToken string     `json:"access_token"`
	User        PublicUser `json:"user"`
}

type DepositCommand struct {
	MachineID       string
	MachineKey      string
	UserID          string
	BottleCount     int64
	PointsPerBottle int64
}

type DepositResult struct {
	EarnedPoints          int64 `json:"earned_points"`
	BottlesAdded          int64 `json:"bottles_added"`
	UserTotalPoints       int64 `json:"user_total_points"`
	UserTotalBottles      int64 `json:"user_total_bottles"`
	MachineCurrentBottles int64 `json:"machine_current_bottles"`
	MachineAvailableSpace int64 `json:"machine_available_space"`
	MachineIsFull         bool  `json:"machine_is_full"`
	TransactionID         int64 `json:"transaction_id"`
}

type RedeemCommand struct {
	UserID  string
	BrandID int64
	Points  int64
}

type RedeemResult struct {
	Coupon        string `json:"coupon"`
	PointsLeft    int64  `json:"points_left"`
	TransactionID int64  `json:"transaction_id"`
}

type AddMachineCommand struct {
	MachineID   string
	Name        string
	City        string
	Lat         float64
	Lng         float64
	MaxCapacity int64
}

type AddMachineResult struct {
	Machine model.Machine `json:"machine"`
	APIKey  string        `json:"api_key"`
}

type EmptyMachineResult struct {
	MachineID        string `json:"machine_id"`
	Name             string `json:"name"`
	BottlesCollected int64  `json:"bottles_collected"`
}

type MachineView struct {
	ID             int64      `json:"id"`
	MachineID      string     `json:"machine_id"`
	Name           string     `json:"name"`
	City           string     `json:"city"`
	Lat            float64    `json:"lat"`
	Lng            float64    `json:"lng"`
	CurrentBottles int64      `json:"current_bottles"`
	MaxCapacity    int64      `json:"max_capacity"`
	TotalBottles   int64      `json:"total_bottles"`
	AvailableSpace int64      `json:"available_space"`
	IsFull         bool       `json:"is_full"`
	LastEmptied    *time.Time `json:"last_emptied"`
	CreatedAt      time.Time  `json:"created_at"`
}

func NewMachineView(m model.Machine) MachineView {
	return MachineView{
		ID:             m.ID,
		MachineID:      m.MachineID,
		Name:           m.Name,
		City:           m.City,
		Lat:            m.Lat,
		Lng:            m.Lng,
		CurrentBottles: m.CurrentBottles,
		MaxCapacity:    m.MaxCapacity,
		TotalBottles:   m.TotalBottles,
		AvailableSpace: m.AvailableSpace(),
		IsFull:         m.IsFull,
		LastEmptied:    m.LastEmptied,
		CreatedAt:      m.CreatedAt,
	}
}

type PointsSummary struct {
	TotalPoints int64               `json:"total_points"`
	Recent      []model.Transaction `json:"recent"`
}

type DashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalMachines     int64 `json:"total_machines"`
	TotalTransactions int64 `json:"total_transactions"`
}

type UserDetail struct {
	User         PublicUser          `json:"user"`
	Transactions []model.Transaction `json:"transactions"`
}

type MachineDetail struct {
	Machine        MachineView         `json:"machine"`
	Transactions   []model.Transaction `json:"transactions"`
	FillPercentage float64             `json:"fill_percentage"`
}
