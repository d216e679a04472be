package model

import "time"

// Client is a CRM client row. Optional columns are pointers so that
// partial updates and absent values survive the JSON round-trip without
// being zeroed.
type Client struct {
	ID                           string     `json:"id"`
	Firstname                    string     `json:"firstname"`
	Lastname                     string     `json:"lastname"`
	Prefix                       *string    `json:"prefix,omitempty"`
	EmailAddress                 *string    `json:"email_address,omitempty"`
	PhoneNumber                  *string    `json:"phone_number,omitempty"`
	ContactNumberWhatsapp        *string    `json:"contact_number_whatsapp,omitempty"`
	EmailInternalAddress         *string    `json:"email_internal_address,omitempty"`
	EmailInternalAddressPassword *string    `json:"email_internal_address_password,omitempty"`
	ForwardEmailAddressClicker   *string    `json:"forward_email_address_clicker,omitempty"`
	LocationSMSReceive           *string    `json:"location_sms_receive,omitempty"`
	Socials                      *string    `json:"socials,omitempty"`
	Street                       *string    `json:"street,omitempty"`
	City                         *string    `json:"city,omitempty"`
	Zipcode                      *string    `json:"zipcode,omitempty"`
	Country                      *string    `json:"country,omitempty"`
	Employed                     *bool      `json:"employed,omitempty"`
	JobTitle                     *string    `json:"job_title,omitempty"`
	AverageSalary                *float64   `json:"average_salary,omitempty"`
	StartDate                    *time.Time `json:"start_date,omitempty"`
	EndDate                      *time.Time `json:"end_date,omitempty"`
	AgentID                      *string    `json:"agent_id,omitempty"`
	ClientResponsive             *bool      `json:"client_responsive,omitempty"`
	CreatedAt                    time.Time  `json:"created_at"`

	// Agent is the embedded weak reference, populated on reads only.
	Agent *AgentRef `json:"agent,omitempty"`
}

// AgentRef is the nested agent shape embedded in client responses.
// List responses carry only the name fields; the detail view also sets
// ID and IsActive.
type AgentRef struct {
	ID        string `json:"id,omitempty"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// ClientUpdate carries the patchable client columns. Nil means "leave
// unchanged".
type ClientUpdate struct {
	Firstname                    *string    `json:"firstname,omitempty"`
	Lastname                     *string    `json:"lastname,omitempty"`
	Prefix                       *string    `json:"prefix,omitempty"`
	EmailAddress                 *string    `json:"email_address,omitempty"`
	PhoneNumber                  *string    `json:"phone_number,omitempty"`
	ContactNumberWhatsapp        *string    `json:"contact_number_whatsapp,omitempty"`
	EmailInternalAddress         *string    `json:"email_internal_address,omitempty"`
	EmailInternalAddressPassword *string    `json:"email_internal_address_password,omitempty"`
	ForwardEmailAddressClicker   *string    `json:"forward_email_address_clicker,omitempty"`
	LocationSMSReceive           *string    `json:"location_sms_receive,omitempty"`
	Socials                      *string    `json:"socials,omitempty"`
	Street                       *string    `json:"street,omitempty"`
	City                         *string    `json:"city,omitempty"`
	Zipcode                      *string    `json:"zipcode,omitempty"`
	Country                      *string    `json:"country,omitempty"`
	Employed                     *bool      `json:"employed,omitempty"`
	JobTitle                     *string    `json:"job_title,omitempty"`
	AverageSalary                *float64   `json:"average_salary,omitempty"`
	StartDate                    *time.Time `json:"start_date,omitempty"`
	EndDate                      *time.Time `json:"end_date,omitempty"`
	AgentID                      *string    `json:"agent_id,omitempty"`
	ClientResponsive             *bool      `json:"client_responsive,omitempty"`
}

// ClientDetail is the client single-row response with its read-only
// relations attached.
type ClientDetail struct {
	Client
	Documents      []Document      `json:"documents"`
	CasinoAccounts []CasinoAccount `json:"casino_accounts"`
	BankAccounts   []BankAccount   `json:"bank_accounts"`
	ContactMoments []ContactMoment `json:"contact_moments"`
}
