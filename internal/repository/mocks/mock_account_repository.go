package mocks

import (
	"context"

	"crmapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CasinoAccountsByClient(ctx context.Context, clientID string) ([]model.CasinoAccount, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CasinoAccount), args.Error(1)
}

func (m *MockAccountRepository) BankAccountsByClient(ctx context.Context, clientID string) ([]model.BankAccount, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BankAccount), args.Error(1)
}

func (m *MockAccountRepository) ContactMomentsByClient(ctx context.Context, clientID string) ([]model.ContactMoment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactMoment), args.Error(1)
}

func (m *MockAccountRepository) CountCasinoByClient(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) CountBankByClient(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}
