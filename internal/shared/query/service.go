package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"kculture-backend/internal/shared/paginate"
)

// Querier is the subset of pgxpool.Pool the service needs; pgx.Tx satisfies
// it too, so entity repositories can run generic operations inside their own
// transactions.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Service implements the shared CRUD/query/search contract for one entity.
// Not-found is a nil item (or false), never an error; only infrastructure
// failures surface as errors.
type Service[T any] struct {
	db   Querier
	desc *Descriptor[T]
}

// NewService validates the descriptor and binds it to a database handle.
func NewService[T any](db Querier, desc *Descriptor[T]) (*Service[T], error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &Service[T]{db: db, desc: desc}, nil
}

// WithTx returns a copy of the service bound to a transaction.
func (s *Service[T]) WithTx(tx Querier) *Service[T] {
	return &Service[T]{db: tx, desc: s.desc}
}

// Descriptor exposes the bound descriptor for search-field composition.
func (s *Service[T]) Descriptor() *Descriptor[T] {
	return s.desc
}

// ListParams carries the inputs of a paginated listing.
type ListParams struct {
	Page     int
	PageSize int
	Query    string
	// Filters are equality constraints; nil values and unknown fields are
	// ignored rather than matched against NULL.
	Filters map[string]interface{}
}

// List returns one page of matching items plus the total match count.
func (s *Service[T]) List(ctx context.Context, p ListParams) ([]*T, int, error) {
	pg := paginate.New(p.Page, p.PageSize)

	b := &condBuilder{}
	s.desc.applyFilters(b, p.Filters)
	s.desc.applySearch(b, p.Query)
	where := b.clause()

	var total int
	countSQL := "SELECT COUNT(*) FROM " + s.desc.Table + where
	if err := s.db.QueryRow(ctx, countSQL, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.desc.Table, err)
	}

	listSQL := fmt.Sprintf("%s%s%s LIMIT $%d OFFSET $%d",
		s.desc.selectSQL(), where, s.desc.orderClause(), b.next(), b.next()+1)
	args := append(b.args, pg.Limit(), pg.Offset())

	items, err := s.queryMany(ctx, listSQL, args)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get fetches by id. When incrementView is set and the entity has a view
// counter, the counter is bumped atomically as part of the same retrieval;
// repeated reads keep incrementing by design.
func (s *Service[T]) Get(ctx context.Context, id int64, incrementView bool) (*T, error) {
	if incrementView && s.desc.ViewCount != "" {
		col := s.desc.Fields[s.desc.ViewCount].Column
		updateSQL := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1",
			s.desc.Table, col, col, s.desc.Fields["id"].Column)
		tag, err := s.db.Exec(ctx, updateSQL, id)
		if err != nil {
			return nil, fmt.Errorf("increment view count on %s: %w", s.desc.Table, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, nil
		}
	}

	return s.queryOne(ctx,
		fmt.Sprintf("%s WHERE %s = $1", s.desc.selectSQL(), s.desc.Fields["id"].Column),
		id)
}

// Featured returns up to limit items ordered purely by view count descending,
// ignoring the entity's default order. Entities without a view counter fall
// back to the default order.
func (s *Service[T]) Featured(ctx context.Context, limit int, filters map[string]interface{}) ([]*T, error) {
	b := &condBuilder{}
	s.desc.applyFilters(b, filters)

	order := s.desc.orderClause()
	if s.desc.ViewCount != "" {
		order = fmt.Sprintf(" ORDER BY %s DESC, %s ASC",
			s.desc.Fields[s.desc.ViewCount].Column, s.desc.Fields["id"].Column)
	}

	listSQL := fmt.Sprintf("%s%s%s LIMIT $%d", s.desc.selectSQL(), b.clause(), order, b.next())
	args := append(b.args, limit)

	return s.queryMany(ctx, listSQL, args)
}

// Popular is an alias of Featured; the two listings are intentionally
// identical (see DESIGN.md).
func (s *Service[T]) Popular(ctx context.Context, limit int) ([]*T, error) {
	return s.Featured(ctx, limit, nil)
}

// Search is List with page 1 and the limit as page size, discarding the total.
func (s *Service[T]) Search(ctx context.Context, q string, limit int) ([]*T, error) {
	items, _, err := s.List(ctx, ListParams{Page: 1, PageSize: limit, Query: q})
	return items, err
}

// Create inserts a row from the supplied values and returns the fully loaded
// item including generated identity and server-side defaults.
func (s *Service[T]) Create(ctx context.Context, values *Values) (*T, error) {
	cols, args, err := s.desc.resolveValues(values)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("create %s: no values supplied", s.desc.Table)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		s.desc.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(s.desc.Columns, ", "))

	item, err := s.desc.Scan(s.db.QueryRow(ctx, insertSQL, args...))
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", s.desc.Table, err)
	}
	return item, nil
}

// Update applies only the supplied fields (absent fields stay untouched),
// refreshes updated_at when the entity has one, and returns the refreshed
// item; nil when no row matched.
func (s *Service[T]) Update(ctx context.Context, id int64, values *Values) (*T, error) {
	cols, args, err := s.desc.resolveValues(values)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return s.Get(ctx, id, false)
	}

	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	if f, ok := s.desc.Fields["updated_at"]; ok {
		sets = append(sets, f.Column+" = NOW()")
	}

	updateSQL := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1 RETURNING %s",
		s.desc.Table,
		strings.Join(sets, ", "),
		s.desc.Fields["id"].Column,
		strings.Join(s.desc.Columns, ", "))

	item, err := s.desc.Scan(s.db.QueryRow(ctx, updateSQL, append([]interface{}{id}, args...)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.desc.Table, err)
	}
	return item, nil
}

// Delete removes a row by id; false when nothing matched. Cascading child
// deletion is the entity repository's job (children first, same transaction).
func (s *Service[T]) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", s.desc.Table, s.desc.Fields["id"].Column), id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", s.desc.Table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of matching rows ignoring pagination.
func (s *Service[T]) Count(ctx context.Context, filters map[string]interface{}) (int, error) {
	b := &condBuilder{}
	s.desc.applyFilters(b, filters)

	var total int
	err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+s.desc.Table+b.clause(), b.args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.desc.Table, err)
	}
	return total, nil
}

// GetByField is a single-row lookup by an arbitrary declared field, used for
// external-id dedup checks.
func (s *Service[T]) GetByField(ctx context.Context, fieldName string, value interface{}) (*T, error) {
	field, ok := s.desc.Fields[fieldName]
	if !ok {
		return nil, fmt.Errorf("%s has no field %q", s.desc.Table, fieldName)
	}

	cond := field.Column + " = $1"
	if field.Array {
		cond = "$1 = ANY(" + field.Column + ")"
	}

	return s.queryOne(ctx,
		fmt.Sprintf("%s WHERE %s LIMIT 1", s.desc.selectSQL(), cond), value)
}

func (s *Service[T]) queryOne(ctx context.Context, sql string, args ...interface{}) (*T, error) {
	item, err := s.desc.Scan(s.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.desc.Table, err)
	}
	return item, nil
}

func (s *Service[T]) queryMany(ctx context.Context, sql string, args []interface{}) ([]*T, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.desc.Table, err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item, err := s.desc.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.desc.Table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

// resolveValues maps field names to columns and wraps string slices for
// array columns.
func (d *Descriptor[T]) resolveValues(values *Values) ([]string, []interface{}, error) {
	if values == nil {
		return nil, nil, nil
	}

	cols := make([]string, 0, len(values.names))
	args := make([]interface{}, 0, len(values.names))

	for i, name := range values.names {
		field, ok := d.Fields[name]
		if !ok {
			return nil, nil, fmt.Errorf("%s has no field %q", d.Table, name)
		}
		arg := values.args[i]
		if field.Array {
			if ss, ok := arg.([]string); ok {
				arg = pq.Array(ss)
			}
		}
		cols = append(cols, field.Column)
		args = append(args, arg)
	}
	return cols, args, nil
}
