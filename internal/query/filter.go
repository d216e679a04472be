package query

import (
	"fmt"
	"strings"
)

// Filter accumulates WHERE conditions with positional ($n) arguments for
// database/sql. Conditions are AND-combined; a free-text search adds one
// OR group across its columns. The zero value is ready to use.
type Filter struct {
	conds []string
	args  []any
}

// Search adds a case-insensitive substring condition ORed across cols.
// LIKE metacharacters in term are escaped so input matches literally.
// Empty terms add no condition.
func (f *Filter) Search(term string, cols ...string) *Filter {
	if term == "" || len(cols) == 0 {
		return f
	}
	f.args = append(f.args, "%"+escapeLike(term)+"%")
	n := len(f.args)
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
	}
	f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
	return f
}

// Eq adds an equality condition. Empty values add no condition (absent
// filters impose no constraint).
func (f *Filter) Eq(col, value string) *Filter {
	if value == "" {
		return f
	}
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s = $%d", col, len(f.args)))
	return f
}

// Clause renders the WHERE clause (with leading space) and its args.
// Returns "" and nil when no conditions were added.
func (f *Filter) Clause() (string, []any) {
	if len(f.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(f.conds, " AND "), f.args
}

// NextArg is the positional index the next appended argument would take,
// used by callers adding LIMIT/OFFSET after the filter's args.
func (f *Filter) NextArg() int { return len(f.args) + 1 }

// escapeLike backslash-escapes %, _ and \ so the term reads literally
// inside a LIKE/ILIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
