package model

import "time"

// Document types accepted by the UI. The database enforces the same set
// with a CHECK constraint.
const (
	DocTypeID             = "ID"
	DocTypePassport       = "Passport"
	DocTypeDriverLicense  = "Driver License"
	DocTypeProofOfAddress = "Proof of Address"
	DocTypeContract       = "Contract"
	DocTypeOther          = "Other"
)

// Document statuses. Stored verbatim, no normalization.
const (
	DocStatusValid   = "valid"
	DocStatusExpired = "expired"
	DocStatusPending = "pending"
)

// Document is a stored client document. FilePath, when set, references
// an object in the documents bucket.
type Document struct {
	ID         string     `json:"id"`
	ClientID   string     `json:"client_id"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	IDNumber   *string    `json:"id_number,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	FilePath   *string    `json:"file_path,omitempty"`
	UploadDate time.Time  `json:"upload_date"`
	CreatedAt  time.Time  `json:"created_at"`

	// Client is the embedded owner reference, populated on reads only.
	Client *ClientRef `json:"client,omitempty"`
}

// ClientRef is the nested client shape embedded in document responses.
type ClientRef struct {
	ID        string `json:"id,omitempty"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// DocumentUpdate carries the patchable document metadata columns.
// FilePath is set internally when a replacement file is uploaded.
type DocumentUpdate struct {
	Type       *string    `json:"type,omitempty"`
	Status     *string    `json:"status,omitempty"`
	IDNumber   *string    `json:"id_number,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	FilePath   *string    `json:"file_path,omitempty"`
}
