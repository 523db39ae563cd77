package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type OTPStore struct {
	mock.Mock
}

func (m *OTPStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	args := m.Called(ctx, phone, code, ttl)
	return args.Error(0)
}

func (m *OTPStore) Get(ctx context.Context, phone string) (string, error) {
	args := m.Called(ctx, phone)
	return args.String(0), args.Error(1)
}

func (m *OTPStore) Delete(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}
