package service

import (
	"context"
	"database/sql"
	"errors"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// AgentInput is the create payload. IsActive is a pointer so "not
// specified" can default to true.
type AgentInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	IsActive  *bool  `json:"is_active"`
}

// AgentService defines the agent use cases.
type AgentService interface {
	// List returns agents ordered by lastname; only active ones unless
	// includeInactive is set.
	List(ctx context.Context, includeInactive bool) ([]model.Agent, error)
	Get(ctx context.Context, id string) (*model.Agent, error)
	Create(ctx context.Context, in AgentInput) (*model.Agent, error)
	Update(ctx context.Context, id string, upd model.AgentUpdate) (*model.Agent, error)
	Delete(ctx context.Context, id string) error
}

type agentService struct {
	agents repository.AgentRepository
}

func NewAgentService(agents repository.AgentRepository) AgentService {
	return &agentService{agents: agents}
}

func (s *agentService) List(ctx context.Context, includeInactive bool) ([]model.Agent, error) {
	return s.agents.List(ctx, includeInactive)
}

func (s *agentService) Get(ctx context.Context, id string) (*model.Agent, error) {
	a, err := s.agents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Agent not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *agentService) Create(ctx context.Context, in AgentInput) (*model.Agent, error) {
	if in.Firstname == "" || in.Lastname == "" {
		return nil, apperr.Validation("First name and last name are required")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.agents.Create(ctx, &model.Agent{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		IsActive:  active,
	})
}

func (s *agentService) Update(ctx context.Context, id string, upd model.AgentUpdate) (*model.Agent, error) {
	a, err := s.agents.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Agent not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *agentService) Delete(ctx context.Context, id string) error {
	// Existence check first so a missing agent yields 404, not a silent
	// no-op delete.
	if _, err := s.agents.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Agent not found")
		}
		return err
	}
	return s.agents.Delete(ctx, id)
}
