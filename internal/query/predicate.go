// Package query composes parameterized filter predicates and paginated listings
// on top of gorm. User input only ever reaches the database as bound arguments.
package query

import (
	"strings"

	"gorm.io/gorm"
)

// Condition is a single parameterized predicate fragment, e.g. "posts.category_id = ?".
type Condition struct {
	SQL  string
	Args []any
}

// Where builds a Condition. sql must only contain trusted column names and placeholders.
func Where(sql string, args ...any) Condition {
	return Condition{SQL: sql, Args: args}
}

// Predicate is an immutable AND-conjunction of conditions. The zero value matches every row.
type Predicate struct {
	conds []Condition
}

// And returns a new predicate with c appended. The receiver is left untouched.
func (p Predicate) And(c Condition) Predicate {
	conds := make([]Condition, len(p.conds), len(p.conds)+1)
	copy(conds, p.conds)
	return Predicate{conds: append(conds, c)}
}

// AndIf appends c only when ok is true. Its argument order matches the return
// values of the optional-filter helpers, so `p.AndIf(Keyword(...))` reads naturally.
func (p Predicate) AndIf(c Condition, ok bool) Predicate {
	if !ok {
		return p
	}
	return p.And(c)
}

// Empty reports whether the predicate filters nothing.
func (p Predicate) Empty() bool {
	return len(p.conds) == 0
}

// Len returns the number of conditions.
func (p Predicate) Len() int {
	return len(p.conds)
}

// SQL renders the conjunction in insertion order. An empty predicate renders as a tautology.
func (p Predicate) SQL() (string, []any) {
	if len(p.conds) == 0 {
		return "1 = 1", nil
	}

	var b strings.Builder
	args := make([]any, 0, len(p.conds))
	for i, c := range p.conds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteByte('(')
		b.WriteString(c.SQL)
		b.WriteByte(')')
		args = append(args, c.Args...)
	}
	return b.String(), args
}

// Apply adds the predicate to tx as a single WHERE expression.
func (p Predicate) Apply(tx *gorm.DB) *gorm.DB {
	if p.Empty() {
		return tx
	}
	sql, args := p.SQL()
	return tx.Where(sql, args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Keyword builds a case-insensitive substring match over columns, OR-ed together.
// A keyword that is empty after trimming is reported as absent.
func Keyword(raw string, columns ...string) (Condition, bool) {
	kw := strings.TrimSpace(raw)
	if kw == "" || len(columns) == 0 {
		return Condition{}, false
	}

	pattern := "%" + likeEscaper.Replace(kw) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return Condition{SQL: strings.Join(parts, " OR "), Args: args}, true
}

// Equal builds "column = ?" when value is present.
func Equal[T any](column string, value *T) (Condition, bool) {
	if value == nil {
		return Condition{}, false
	}
	return Where(column+" = ?", *value), true
}
