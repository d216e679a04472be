// Package repository defines the data-access contracts. Implementations
// live in subpackages (postgres) and contain SQL only — no business
// rules.
package repository

import "crmapi/internal/query"

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

// ClientQuery parametrizes a client list fetch. SortBy/SortOrder are
// raw request values; implementations validate them against their own
// column whitelist.
type ClientQuery struct {
	Search    string
	AgentID   string
	SortBy    string
	SortOrder string
	Page      query.Page
}

// DocumentQuery parametrizes a document list fetch.
type DocumentQuery struct {
	Search    string
	ClientID  string
	Type      string
	Status    string
	SortBy    string
	SortOrder string
	Page      query.Page
}
