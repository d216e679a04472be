package query

import "strings"

// Sort is a validated ORDER BY pair. Column is always taken from a
// whitelist: identifiers cannot be bound as query parameters, so raw
// sortBy input must never reach the SQL text.
type Sort struct {
	Column string
	Desc   bool
}

// NewSort validates sortBy against allowed and falls back to def when
// the column is unknown or empty. sortOrder "desc" (case-insensitive)
// sorts descending; anything else ascending, except that an empty
// sortOrder keeps the default's direction.
func NewSort(sortBy, sortOrder string, allowed []string, def Sort) Sort {
	s := def
	for _, col := range allowed {
		if sortBy == col {
			s.Column = col
			s.Desc = false
			break
		}
	}
	switch strings.ToLower(sortOrder) {
	case "desc":
		s.Desc = true
	case "asc":
		s.Desc = false
	}
	return s
}

// Dir renders the direction keyword with a leading space.
func (s Sort) Dir() string {
	if s.Desc {
		return " DESC"
	}
	return " ASC"
}

// OrderBy renders the clause with a leading space, e.g. " ORDER BY lastname ASC".
func (s Sort) OrderBy() string {
	return " ORDER BY " + s.Column + s.Dir()
}
