package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/query"
	"crmapi/internal/repository"
)

// ClientListParams are the raw list-request parameters; clamping and
// whitelisting happen downstream.
type ClientListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	AgentID   string
}

// ClientListResult is one page of clients plus the totals the HTTP
// layer needs to build pagination metadata.
type ClientListResult struct {
	Items []model.Client
	Total int
	Page  query.Page
}

// ClientService defines the client use cases.
type ClientService interface {
	List(ctx context.Context, p ClientListParams) (*ClientListResult, error)
	// Get returns the client with documents, casino/bank accounts and
	// contact moments attached.
	Get(ctx context.Context, id string) (*model.ClientDetail, error)
	Create(ctx context.Context, c *model.Client) (*model.Client, error)
	Update(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error)
	// Delete removes the client row. Related documents and accounts are
	// counted (and logged) but do not block the delete.
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	clients  repository.ClientRepository
	docs     repository.DocumentRepository
	accounts repository.AccountRepository
}

func NewClientService(clients repository.ClientRepository, docs repository.DocumentRepository, accounts repository.AccountRepository) ClientService {
	return &clientService{clients: clients, docs: docs, accounts: accounts}
}

func (s *clientService) List(ctx context.Context, p ClientListParams) (*ClientListResult, error) {
	page := query.NewPage(p.Page, p.Limit)
	res, err := s.clients.List(ctx, repository.ClientQuery{
		Search:    p.Search,
		AgentID:   p.AgentID,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Page:      page,
	})
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Items: res.Items, Total: res.Total, Page: page}, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*model.ClientDetail, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Client not found")
		}
		return nil, err
	}

	docs, err := s.docs.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	casino, err := s.accounts.CasinoAccountsByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load casino accounts: %w", err)
	}
	bank, err := s.accounts.BankAccountsByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load bank accounts: %w", err)
	}
	moments, err := s.accounts.ContactMomentsByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load contact moments: %w", err)
	}

	return &model.ClientDetail{
		Client:         *c,
		Documents:      docs,
		CasinoAccounts: casino,
		BankAccounts:   bank,
		ContactMoments: moments,
	}, nil
}

// Create validates required fields and the email uniqueness precheck,
// then inserts. The precheck races with concurrent creates; the UNIQUE
// constraint behind the repository closes that window.
func (s *clientService) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	if c.Firstname == "" || c.Lastname == "" {
		return nil, apperr.Validation("First name and last name are required")
	}

	if c.EmailAddress != nil && *c.EmailAddress != "" {
		if err := s.checkEmailFree(ctx, *c.EmailAddress, ""); err != nil {
			return nil, err
		}
	}

	stored, err := s.clients.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	// Re-read to attach the agent name reference.
	return s.clients.FindByID(ctx, stored.ID)
}

func (s *clientService) Update(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error) {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Client not found")
		}
		return nil, err
	}

	if upd.EmailAddress != nil && *upd.EmailAddress != "" {
		if err := s.checkEmailFree(ctx, *upd.EmailAddress, id); err != nil {
			return nil, err
		}
	}

	if _, err := s.clients.Update(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Client not found")
		}
		return nil, err
	}
	return s.clients.FindByID(ctx, id)
}

// Delete counts related rows first. The counts are informational only —
// nothing is protected, matching the CRM's existing contract.
func (s *clientService) Delete(ctx context.Context, id string) error {
	docCount, err := s.docs.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	casinoCount, err := s.accounts.CountCasinoByClient(ctx, id)
	if err != nil {
		return err
	}
	bankCount, err := s.accounts.CountBankByClient(ctx, id)
	if err != nil {
		return err
	}
	if docCount+casinoCount+bankCount > 0 {
		logEvent(map[string]any{
			"event":           "client_delete_with_relations",
			"client_id":       id,
			"documents":       docCount,
			"casino_accounts": casinoCount,
			"bank_accounts":   bankCount,
		})
	}

	return s.clients.Delete(ctx, id)
}

// checkEmailFree returns a conflict error when another client already
// holds email. Comparison is exact; addresses are not normalized.
func (s *clientService) checkEmailFree(ctx context.Context, email, excludeID string) error {
	_, err := s.clients.FindIDByEmail(ctx, email, excludeID)
	if err == nil {
		return apperr.Conflict("A client with this email already exists")
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
