package query

import (
	"fmt"
	"sort"
	"strings"
)

// condBuilder accumulates WHERE conditions with positional args, the same
// argIndex pattern the repositories use for hand-written queries.
type condBuilder struct {
	conds []string
	args  []interface{}
}

func (b *condBuilder) next() int {
	return len(b.args) + 1
}

func (b *condBuilder) add(cond string, args ...interface{}) {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

// clause renders " WHERE ..." or "" when unconstrained.
func (b *condBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// SearchFilter builds the OR-combined free-text condition over the given
// fields: ILIKE substring match on scalar columns, exact element match on
// array columns. Returns ("", nil) — no constraint — for an empty query or
// when none of the field names are declared on the entity; unknown names are
// skipped silently.
func (d *Descriptor[T]) SearchFilter(q string, fields []string, argStart int) (string, []interface{}) {
	if q == "" || len(fields) == 0 {
		return "", nil
	}

	var parts []string
	var args []interface{}

	for _, name := range fields {
		field, ok := d.Fields[name]
		if !ok {
			continue
		}

		idx := argStart + len(args)
		if field.Array {
			parts = append(parts, fmt.Sprintf("$%d = ANY(%s)", idx, field.Column))
			args = append(args, q)
		} else {
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", field.Column, idx))
			args = append(args, "%"+q+"%")
		}
	}

	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// applySearch adds the default search condition built from SearchFields.
func (d *Descriptor[T]) applySearch(b *condBuilder, q string) {
	cond, args := d.SearchFilter(q, d.SearchFields, b.next())
	if cond != "" {
		b.add(cond, args...)
	}
}

// applyFilters adds equality conditions for the supplied field/value pairs.
// Nil values and unknown fields constrain nothing. Keys are applied in sorted
// order so the generated SQL is stable.
func (d *Descriptor[T]) applyFilters(b *condBuilder, filters map[string]interface{}) {
	if len(filters) == 0 {
		return
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := filters[name]
		if value == nil {
			continue
		}
		field, ok := d.Fields[name]
		if !ok {
			continue
		}

		if field.Array {
			b.add(fmt.Sprintf("$%d = ANY(%s)", b.next(), field.Column), value)
		} else {
			b.add(fmt.Sprintf("%s = $%d", field.Column, b.next()), value)
		}
	}
}
