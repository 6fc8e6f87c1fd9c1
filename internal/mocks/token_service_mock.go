package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) GenerateToken(username string) (string, string, time.Time, error) {
	args := m.Called(username)
	expiry, _ := args.Get(2).(time.Time)
	return args.String(0), args.String(1), expiry, args.Error(3)
}

func (m *MockTokenGenerator) ValidateToken(token string) (string, string, error) {
	args := m.Called(token)
	return args.String(0), args.String(1), args.Error(2)
}
