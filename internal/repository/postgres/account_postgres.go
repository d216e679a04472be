package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// AccountPostgres reads the casino/bank account and contact-moment
// relations. All queries here are read-only.
type AccountPostgres struct {
	db *sql.DB
}

func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

func (r *AccountPostgres) CasinoAccountsByClient(ctx context.Context, clientID string) ([]model.CasinoAccount, error) {
	const q = `
		SELECT casino_client.id, casino_client.client_id, casino_client.casino_id,
			casino_client.username, casino_client.created_at,
			casino.id, casino.casino_name, casino.website
		FROM casino_client
		JOIN casino ON casino.id = casino_client.casino_id
		WHERE casino_client.client_id = $1`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CasinoAccount, 0)
	for rows.Next() {
		var a model.CasinoAccount
		var cas model.Casino
		if err := rows.Scan(
			&a.ID, &a.ClientID, &a.CasinoID, &a.Username, &a.CreatedAt,
			&cas.ID, &cas.CasinoName, &cas.Website,
		); err != nil {
			return nil, err
		}
		a.Casino = &cas
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *AccountPostgres) BankAccountsByClient(ctx context.Context, clientID string) ([]model.BankAccount, error) {
	const q = `
		SELECT bank_client.id, bank_client.client_id, bank_client.bank_id,
			bank_client.account_number, bank_client.created_at,
			bank.id, bank.name, bank.website
		FROM bank_client
		JOIN bank ON bank.id = bank_client.bank_id
		WHERE bank_client.client_id = $1`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.BankAccount, 0)
	for rows.Next() {
		var a model.BankAccount
		var b model.Bank
		if err := rows.Scan(
			&a.ID, &a.ClientID, &a.BankID, &a.AccountNumber, &a.CreatedAt,
			&b.ID, &b.Name, &b.Website,
		); err != nil {
			return nil, err
		}
		a.Bank = &b
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *AccountPostgres) ContactMomentsByClient(ctx context.Context, clientID string) ([]model.ContactMoment, error) {
	const q = `
		SELECT id, client_id, date, notes, user_id
		FROM client_contact_moment
		WHERE client_id = $1
		ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContactMoment, 0)
	for rows.Next() {
		var m model.ContactMoment
		if err := rows.Scan(&m.ID, &m.ClientID, &m.Date, &m.Notes, &m.UserID); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *AccountPostgres) CountCasinoByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM casino_client WHERE client_id = $1", clientID).Scan(&n)
	return n, err
}

func (r *AccountPostgres) CountBankByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bank_client WHERE client_id = $1", clientID).Scan(&n)
	return n, err
}
