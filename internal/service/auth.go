package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/repository"
	"github.com/praneswara/polygreen/pkg/token"
)

// bcrypt silently ignores input past 72 bytes; reject instead of truncating.
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password longer than 72 bytes")

type AuthService interface {
	Register(ctx context.Context, cmd RegisterCommand) (PublicUser, error)
	Login(ctx context.Context, cmd LoginCommand) (LoginResult, error)
	GetProfile(userID string) (PublicUser, error)
	FetchByMobile(mobile string) (PublicUser, error)
}

type authService struct {
	txManager repository.TxManager
	userRepo  repository.UserRepository
	tokens    *token.Manager
	log       *zap.Logger
}

func NewAuthService(txManager repository.TxManager, userRepo repository.UserRepository,
	tokens *token.Manager, log *zap.Logger) AuthService {
	return &authService{txManager: txManager, userRepo: userRepo, tokens: tokens, log: log}
}

func (s *authService) Register(ctx context.Context, cmd RegisterCommand) (PublicUser, error) {
	if len(cmd.Password) > maxPasswordBytes {
		return PublicUser{}, NewServiceError(constants.ErrCodeValidationFailed, ErrPasswordTooLong)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return PublicUser{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	user := model.User{
		Name:         cmd.Name,
		Mobile:       cmd.Mobile,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrUserExists) {
				return NewServiceError(constants.ErrCodeUserExisted, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		// The human-readable id derives from the surrogate key, so it can
		// only be assigned once the insert has produced one.
		user.UserID = fmt.Sprintf("PG%06d", user.ID)
		if err := s.userRepo.AssignUserID(ctx, user.ID, user.UserID); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		return nil
	})

	if err != nil {
		s.log.Error("Failed to register user",
			zap.String("mobile", cmd.Mobile),
			zap.Error(err))
		return PublicUser{}, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.UserID),
		zap.String("mobile", cmd.Mobile))

	return NewPublicUser(user), nil
}

func (s *authService) Login(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	user, err := s.userRepo.FindByMobile(cmd.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, NewServiceError(constants.ErrCodeAuthFailed, err)
		}
		return LoginResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return LoginResult{}, NewServiceError(constants.ErrCodeAuthFailed, err)
	}

	accessToken, err := s.tokens.Generate(user.UserID, user.Mobile, user.Name)
	if err != nil {
		s.log.Error("Failed to sign access token",
			zap.String("user_id", user.UserID),
			zap.Error(err))
		return LoginResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.UserID))

	return LoginResult{AccessToken: accessToken, User: NewPublicUser(user)}, nil
}

func (s *authService) GetProfile(userID string) (PublicUser, error) {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return PublicUser{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return PublicUser{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	return NewPublicUser(user), nil
}

func (s *authService) FetchByMobile(mobile string) (PublicUser, error) {
	user, err := s.userRepo.FindByMobile(mobile)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return PublicUser{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return PublicUser{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	return NewPublicUser(user), nil
}
