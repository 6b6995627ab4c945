package query

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Field describes one addressable column of an entity. Array marks text[]
// columns (tags, genre, cast) which filter with `= ANY(col)` instead of
// equality/ILIKE.
type Field struct {
	Column string
	Array  bool
}

// Descriptor is the declarative configuration the generic service is
// parameterized with: one per entity, built once at startup. Field names
// referenced by SearchFields/DefaultOrder are checked by Validate so a typo
// fails at boot instead of silently matching nothing at request time.
type Descriptor[T any] struct {
	// Table name in the database.
	Table string

	// Columns is the select list, in the order Scan expects.
	Columns []string

	// Fields maps logical field names to columns. Must contain "id".
	Fields map[string]Field

	// SearchFields are the fields the free-text search ORs across.
	SearchFields []string

	// DefaultOrder lists field names, "-" prefix meaning descending.
	DefaultOrder []string

	// ViewCount names the view-counter field, empty if the entity has none.
	ViewCount string

	// Scan reads one row in Columns order.
	Scan func(row pgx.Row) (*T, error)
}

// Validate checks the descriptor wiring. Called by NewService.
func (d *Descriptor[T]) Validate() error {
	if d.Table == "" {
		return fmt.Errorf("query: descriptor has no table")
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("query: descriptor for %s has no columns", d.Table)
	}
	if d.Scan == nil {
		return fmt.Errorf("query: descriptor for %s has no scan function", d.Table)
	}
	if _, ok := d.Fields["id"]; !ok {
		return fmt.Errorf("query: descriptor for %s has no id field", d.Table)
	}
	for _, name := range d.SearchFields {
		if _, ok := d.Fields[name]; !ok {
			return fmt.Errorf("query: %s search field %q is not declared", d.Table, name)
		}
	}
	for _, name := range d.DefaultOrder {
		trimmed := strings.TrimPrefix(name, "-")
		if _, ok := d.Fields[trimmed]; !ok {
			return fmt.Errorf("query: %s order field %q is not declared", d.Table, trimmed)
		}
	}
	if d.ViewCount != "" {
		if _, ok := d.Fields[d.ViewCount]; !ok {
			return fmt.Errorf("query: %s view count field %q is not declared", d.Table, d.ViewCount)
		}
	}
	return nil
}

// MultilingualFields expands a base field name into itself plus the language
// variants that exist on the entity (_en, _ja, _zh), optionally the parallel
// description set, and tags when present. Variants the entity does not have
// are left out rather than failing.
func (d *Descriptor[T]) MultilingualFields(base string, includeDescription bool) []string {
	languages := []string{"en", "ja", "zh"}

	var fields []string
	appendIfDeclared := func(name string) {
		if _, ok := d.Fields[name]; ok {
			fields = append(fields, name)
		}
	}

	appendIfDeclared(base)
	for _, lang := range languages {
		appendIfDeclared(base + "_" + lang)
	}

	if includeDescription {
		appendIfDeclared("description")
		for _, lang := range languages {
			appendIfDeclared("description_" + lang)
		}
	}

	appendIfDeclared("tags")

	return fields
}

// selectSQL builds the shared SELECT prefix.
func (d *Descriptor[T]) selectSQL() string {
	return "SELECT " + strings.Join(d.Columns, ", ") + " FROM " + d.Table
}

// orderClause renders DefaultOrder, always appending id as a tiebreak so page
// boundaries stay deterministic when the order key repeats.
func (d *Descriptor[T]) orderClause() string {
	var parts []string
	hasID := false

	for _, name := range d.DefaultOrder {
		desc := strings.HasPrefix(name, "-")
		trimmed := strings.TrimPrefix(name, "-")
		field := d.Fields[trimmed]
		if trimmed == "id" {
			hasID = true
		}
		if desc {
			parts = append(parts, field.Column+" DESC")
		} else {
			parts = append(parts, field.Column+" ASC")
		}
	}

	if !hasID {
		parts = append(parts, d.Fields["id"].Column+" ASC")
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}
