package repository

import (
	"context"

	"crmapi/internal/model"
)

// AccountRepository reads the casino/bank account and contact-moment
// relations embedded in the client detail view. This service never
// writes these tables.
type AccountRepository interface {
	CasinoAccountsByClient(ctx context.Context, clientID string) ([]model.CasinoAccount, error)
	BankAccountsByClient(ctx context.Context, clientID string) ([]model.BankAccount, error)
	ContactMomentsByClient(ctx context.Context, clientID string) ([]model.ContactMoment, error)

	// CountCasinoByClient and CountBankByClient back the read-only
	// related-record check before a client delete.
	CountCasinoByClient(ctx context.Context, clientID string) (int, error)
	CountBankByClient(ctx context.Context, clientID string) (int, error)
}
