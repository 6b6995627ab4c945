package query

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSpot struct {
	ID        int64
	Name      string
	ViewCount int
	CreatedAt time.Time
}

func testDescriptor() *Descriptor[testSpot] {
	return &Descriptor[testSpot]{
		Table:   "spots",
		Columns: []string{"id", "name", "view_count", "created_at"},
		Fields: map[string]Field{
			"id":             {Column: "id"},
			"name":           {Column: "name"},
			"name_en":        {Column: "name_en"},
			"name_ja":        {Column: "name_ja"},
			"description":    {Column: "description"},
			"description_en": {Column: "description_en"},
			"category":       {Column: "category"},
			"tags":           {Column: "tags", Array: true},
			"view_count":     {Column: "view_count"},
			"updated_at":     {Column: "updated_at"},
		},
		SearchFields: []string{"name", "name_en", "description", "tags"},
		DefaultOrder: []string{"-view_count"},
		ViewCount:    "view_count",
		Scan: func(row pgx.Row) (*testSpot, error) {
			var s testSpot
			if err := row.Scan(&s.ID, &s.Name, &s.ViewCount, &s.CreatedAt); err != nil {
				return nil, err
			}
			return &s, nil
		},
	}
}

func TestDescriptorValidate(t *testing.T) {
	d := testDescriptor()
	require.NoError(t, d.Validate())

	t.Run("unknown search field fails at configuration time", func(t *testing.T) {
		bad := testDescriptor()
		bad.SearchFields = append(bad.SearchFields, "no_such_field")
		assert.Error(t, bad.Validate())
	})

	t.Run("unknown order field fails", func(t *testing.T) {
		bad := testDescriptor()
		bad.DefaultOrder = []string{"-missing"}
		assert.Error(t, bad.Validate())
	})

	t.Run("missing id field fails", func(t *testing.T) {
		bad := testDescriptor()
		delete(bad.Fields, "id")
		assert.Error(t, bad.Validate())
	})

	t.Run("unknown view count field fails", func(t *testing.T) {
		bad := testDescriptor()
		bad.ViewCount = "views"
		assert.Error(t, bad.Validate())
	})
}

func TestSearchFilter(t *testing.T) {
	d := testDescriptor()

	t.Run("scalar and array fields combine with OR", func(t *testing.T) {
		cond, args := d.SearchFilter("goblin", []string{"name", "tags"}, 1)
		assert.Equal(t, "(name ILIKE $1 OR $2 = ANY(tags))", cond)
		assert.Equal(t, []interface{}{"%goblin%", "goblin"}, args)
	})

	t.Run("empty query means no constraint", func(t *testing.T) {
		cond, args := d.SearchFilter("", []string{"name", "tags"}, 1)
		assert.Empty(t, cond)
		assert.Nil(t, args)
	})

	t.Run("unknown fields are skipped silently", func(t *testing.T) {
		cond, args := d.SearchFilter("goblin", []string{"bogus", "name"}, 3)
		assert.Equal(t, "(name ILIKE $3)", cond)
		assert.Equal(t, []interface{}{"%goblin%"}, args)
	})

	t.Run("only unknown fields means no constraint, not match-all", func(t *testing.T) {
		cond, args := d.SearchFilter("goblin", []string{"bogus", "missing"}, 1)
		assert.Empty(t, cond)
		assert.Nil(t, args)
	})

	t.Run("no fields means no constraint", func(t *testing.T) {
		cond, _ := d.SearchFilter("goblin", nil, 1)
		assert.Empty(t, cond)
	})
}

func TestMultilingualFields(t *testing.T) {
	d := testDescriptor()

	t.Run("expands existing variants only", func(t *testing.T) {
		// name_zh is not declared on the test entity, so it must be left out
		fields := d.MultilingualFields("name", false)
		assert.Equal(t, []string{"name", "name_en", "name_ja", "tags"}, fields)
	})

	t.Run("includes description set on request", func(t *testing.T) {
		fields := d.MultilingualFields("name", true)
		assert.Equal(t, []string{"name", "name_en", "name_ja", "description", "description_en", "tags"}, fields)
	})

	t.Run("unknown base yields tags only", func(t *testing.T) {
		fields := d.MultilingualFields("title", false)
		assert.Equal(t, []string{"tags"}, fields)
	})
}

func TestOrderClause(t *testing.T) {
	d := testDescriptor()
	assert.Equal(t, " ORDER BY view_count DESC, id ASC", d.orderClause())

	d.DefaultOrder = []string{"-view_count", "name"}
	assert.Equal(t, " ORDER BY view_count DESC, name ASC, id ASC", d.orderClause())

	d.DefaultOrder = []string{"-id"}
	assert.Equal(t, " ORDER BY id DESC", d.orderClause())
}

func TestApplyFilters(t *testing.T) {
	d := testDescriptor()

	t.Run("nil values and unknown fields constrain nothing", func(t *testing.T) {
		b := &condBuilder{}
		d.applyFilters(b, map[string]interface{}{
			"category": nil,
			"bogus":    "x",
		})
		assert.Empty(t, b.clause())
		assert.Empty(t, b.args)
	})

	t.Run("keys are applied in sorted order with sequential args", func(t *testing.T) {
		b := &condBuilder{}
		d.applyFilters(b, map[string]interface{}{
			"name":     "Han River Park",
			"category": "drama",
		})
		assert.Equal(t, " WHERE category = $1 AND name = $2", b.clause())
		assert.Equal(t, []interface{}{"drama", "Han River Park"}, b.args)
	})

	t.Run("array field filters with ANY", func(t *testing.T) {
		b := &condBuilder{}
		d.applyFilters(b, map[string]interface{}{"tags": "bts"})
		assert.Equal(t, " WHERE $1 = ANY(tags)", b.clause())
	})
}

func TestFiltersAndSearchCompose(t *testing.T) {
	d := testDescriptor()
	b := &condBuilder{}
	d.applyFilters(b, map[string]interface{}{"category": "kpop"})
	d.applySearch(b, "seoul")

	assert.Equal(t,
		" WHERE category = $1 AND (name ILIKE $2 OR name_en ILIKE $3 OR description ILIKE $4 OR $5 = ANY(tags))",
		b.clause())
	assert.Equal(t, []interface{}{"kpop", "%seoul%", "%seoul%", "%seoul%", "seoul"}, b.args)
}

func TestValues(t *testing.T) {
	v := NewValues().Set("name", "Namsan Tower").Set("category", "drama")
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"name", "category"}, v.Fields())

	name := "updated"
	var missing *string
	SetIf(v, "name_en", &name)
	SetIf(v, "name_ja", missing)
	assert.Equal(t, []string{"name", "category", "name_en"}, v.Fields())

	var nilValues *Values
	assert.Equal(t, 0, nilValues.Len())
}

func TestResolveValues(t *testing.T) {
	d := testDescriptor()

	t.Run("maps names to columns and wraps arrays", func(t *testing.T) {
		v := NewValues().Set("name", "Namsan Tower").Set("tags", []string{"drama", "seoul"})
		cols, args, err := d.resolveValues(v)
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "tags"}, cols)
		require.Len(t, args, 2)
		assert.Equal(t, "Namsan Tower", args[0])
		// array column is wrapped for the driver
		assert.NotEqual(t, []string{"drama", "seoul"}, args[1])
	})

	t.Run("unknown field is a hard error", func(t *testing.T) {
		v := NewValues().Set("bogus", 1)
		_, _, err := d.resolveValues(v)
		assert.Error(t, err)
	})

	t.Run("nil values resolve to nothing", func(t *testing.T) {
		cols, args, err := d.resolveValues(nil)
		require.NoError(t, err)
		assert.Empty(t, cols)
		assert.Empty(t, args)
	})
}
