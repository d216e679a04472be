package model

import "time"

// Agent is a CRM agent row, referenced weakly by clients.
type Agent struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AgentUpdate carries the patchable agent columns.
type AgentUpdate struct {
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}
