package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/praneswara/polygreen/pkg/smsprovider"
)

type SMSProvider struct {
	mock.Mock
}

func (m *SMSProvider) Send(ctx context.Context, to string, text string) (smsprovider.Response, error) {
	args := m.Called(ctx, to, text)
	return args.Get(0).(smsprovider.Response), args.Error(1)
}
