package mocks

import (
	"context"

	"crmapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) List(ctx context.Context, includeInactive bool) ([]model.Agent, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id string) (*model.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Agent), args.Error(1)
}

func (m *MockAgentRepository) Create(ctx context.Context, a *model.Agent) (*model.Agent, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Agent), args.Error(1)
}

func (m *MockAgentRepository) Update(ctx context.Context, id string, upd model.AgentUpdate) (*model.Agent, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Agent), args.Error(1)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
