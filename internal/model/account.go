package model

import "time"

// Casino and bank account rows are read-only in this service: they are
// embedded in the client detail view and counted before a client delete,
// but never written here.

type Casino struct {
	ID         string  `json:"id"`
	CasinoName string  `json:"casino_name"`
	Website    *string `json:"website,omitempty"`
}

type CasinoAccount struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	CasinoID  string    `json:"casino_id"`
	Username  *string   `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Casino    *Casino   `json:"casino,omitempty"`
}

type Bank struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
}

type BankAccount struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	BankID        string    `json:"bank_id"`
	AccountNumber *string   `json:"account_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Bank          *Bank     `json:"bank,omitempty"`
}

// ContactMoment records a dated note about a client interaction.
type ContactMoment struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	Date     time.Time `json:"date"`
	Notes    *string   `json:"notes,omitempty"`
	UserID   *string   `json:"user_id,omitempty"`
}
