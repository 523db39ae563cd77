package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/repository"
)

const recentTransactionsLimit = 5

type ReportService interface {
	Dashboard() DashboardStats
	Users() ([]PublicUser, error)
	UserDetail(userID string) (UserDetail, error)
	Machines() ([]MachineView, error)
	MachineDetail(machineID string) (MachineDetail, error)
	Transactions(limit int) ([]model.Transaction, error)
	PointsSummary(userID string) (PointsSummary, error)
	UserTransactions(userID string) ([]model.Transaction, error)
}

type reportService struct {
	userRepo        repository.UserRepository
	machineRepo     repository.MachineRepository
	transactionRepo repository.TransactionRepository
	log             *zap.Logger
}

func NewReportService(userRepo repository.UserRepository, machineRepo repository.MachineRepository,
	transactionRepo repository.TransactionRepository, log *zap.Logger) ReportService {
	return &reportService{
		userRepo:        userRepo,
		machineRepo:     machineRepo,
		transactionRepo: transactionRepo,
		log:             log,
	}
}

// Dashboard never fails; a count that cannot be read shows as zero.
func (s *reportService) Dashboard() DashboardStats {
	stats := DashboardStats{}

	if count, err := s.userRepo.Count(); err == nil {
		stats.TotalUsers = count
	} else {
		s.log.Error("Failed to count users", zap.Error(err))
	}

	if count, err := s.machineRepo.Count(); err == nil {
		stats.TotalMachines = count
	} else {
		s.log.Error("Failed to count machines", zap.Error(err))
	}

	if count, err := s.transactionRepo.Count(); err == nil {
		stats.TotalTransactions = count
	} else {
		s.log.Error("Failed to count transactions", zap.Error(err))
	}

	return stats
}

func (s *reportService) Users() ([]PublicUser, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	views := make([]PublicUser, 0, len(users))
	for _, u := range users {
		views = append(views, NewPublicUser(u))
	}
	return views, nil
}

func (s *reportService) UserDetail(userID string) (UserDetail, error) {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return UserDetail{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return UserDetail{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	transactions, err := s.transactionRepo.ListByUserID(userID, 0)
	if err != nil {
		return UserDetail{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return UserDetail{User: NewPublicUser(user), Transactions: transactions}, nil
}

func (s *reportService) Machines() ([]MachineView, error) {
	machines, err := s.machineRepo.List()
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	views := make([]MachineView, 0, len(machines))
	for _, m := range machines {
		views = append(views, NewMachineView(m))
	}
	return views, nil
}

func (s *reportService) MachineDetail(machineID string) (MachineDetail, error) {
	machine, err := s.machineRepo.FindByMachineID(machineID)
	if err != nil {
		if errors.Is(err, repository.ErrMachineNotFound) {
			return MachineDetail{}, NewServiceError(constants.ErrCodeMachineNotFound, err)
		}
		return MachineDetail{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	transactions, err := s.transactionRepo.ListByMachineID(machineID)
	if err != nil {
		return MachineDetail{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	fillPercentage := 0.0
	if machine.MaxCapacity > 0 {
		fillPercentage = float64(machine.CurrentBottles) / float64(machine.MaxCapacity) * 100
	}

	return MachineDetail{
		Machine:        NewMachineView(machine),
		Transactions:   transactions,
		FillPercentage: fillPercentage,
	}, nil
}

func (s *reportService) Transactions(limit int) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.List(limit)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	return transactions, nil
}

func (s *reportService) PointsSummary(userID string) (PointsSummary, error) {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return PointsSummary{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return PointsSummary{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	recent, err := s.transactionRepo.ListByUserID(userID, recentTransactionsLimit)
	if err != nil {
		return PointsSummary{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return PointsSummary{TotalPoints: user.Points, Recent: recent}, nil
}

func (s *reportService) UserTransactions(userID string) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.ListByUserID(userID, 0)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	return transactions, nil
}
