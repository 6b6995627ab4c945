package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"kculture-backend/internal/domains/tour"
	"kculture-backend/internal/shared/query"
	"kculture-backend/pkg/database"
)

var tourColumns = []string{
	"id", "title", "title_en", "title_ja", "title_zh",
	"description", "description_en", "description_ja", "description_zh",
	"duration_hours", "distance_km", "difficulty", "image_url", "images",
	"tags", "view_count", "content_id", "is_featured", "created_at", "updated_at",
}

// Descriptor wires the tours table into the generic query service.
func Descriptor() *query.Descriptor[tour.Tour] {
	return &query.Descriptor[tour.Tour]{
		Table:   "tours",
		Columns: tourColumns,
		Fields: map[string]query.Field{
			"id":             {Column: "id"},
			"title":          {Column: "title"},
			"title_en":       {Column: "title_en"},
			"title_ja":       {Column: "title_ja"},
			"title_zh":       {Column: "title_zh"},
			"description":    {Column: "description"},
			"description_en": {Column: "description_en"},
			"description_ja": {Column: "description_ja"},
			"description_zh": {Column: "description_zh"},
			"duration_hours": {Column: "duration_hours"},
			"distance_km":    {Column: "distance_km"},
			"difficulty":     {Column: "difficulty"},
			"image_url":      {Column: "image_url"},
			"images":         {Column: "images", Array: true},
			"tags":           {Column: "tags", Array: true},
			"view_count":     {Column: "view_count"},
			"content_id":     {Column: "content_id"},
			"is_featured":    {Column: "is_featured"},
			"created_at":     {Column: "created_at"},
			"updated_at":     {Column: "updated_at"},
		},
		SearchFields: []string{
			"title", "title_en", "title_ja", "title_zh",
			"description", "description_en", "description_ja", "description_zh",
			"tags",
		},
		// featured tours float to the top of the plain listing
		DefaultOrder: []string{"-is_featured", "-view_count"},
		ViewCount:    "view_count",
		Scan:         scanTour,
	}
}

func scanTour(row pgx.Row) (*tour.Tour, error) {
	var t tour.Tour
	err := row.Scan(
		&t.ID, &t.Title, &t.TitleEn, &t.TitleJa, &t.TitleZh,
		&t.Description, &t.DescriptionEn, &t.DescriptionJa, &t.DescriptionZh,
		&t.DurationHours, &t.DistanceKm, &t.Difficulty, &t.ImageURL, pq.Array(&t.Images),
		pq.Array(&t.Tags), &t.ViewCount, &t.ContentID, &t.IsFeatured, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// PostgresRepository owns tour persistence plus the ordered tour_spots
// collection.
type PostgresRepository struct {
	pool  *pgxpool.Pool
	tours *query.Service[tour.Tour]
}

func NewPostgresRepository(pool *pgxpool.Pool) (*PostgresRepository, error) {
	svc, err := query.NewService(pool, Descriptor())
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{pool: pool, tours: svc}, nil
}

func (r *PostgresRepository) List(ctx context.Context, p query.ListParams) ([]*tour.Tour, int, error) {
	return r.tours.List(ctx, p)
}

// GetByID loads a tour with its stops sorted by order.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64, incrementView bool) (*tour.Tour, error) {
	t, err := r.tours.Get(ctx, id, incrementView)
	if err != nil || t == nil {
		return t, err
	}

	stops, err := r.GetTourSpots(ctx, id)
	if err != nil {
		return nil, err
	}
	t.TourSpots = stops
	return t, nil
}

// Featured lists editorially flagged tours ranked by views.
func (r *PostgresRepository) Featured(ctx context.Context, limit int) ([]*tour.Tour, error) {
	return r.tours.Featured(ctx, limit, map[string]interface{}{"is_featured": true})
}

func (r *PostgresRepository) Popular(ctx context.Context, limit int) ([]*tour.Tour, error) {
	return r.tours.Popular(ctx, limit)
}

func (r *PostgresRepository) Search(ctx context.Context, q string, limit int) ([]*tour.Tour, error) {
	return r.tours.Search(ctx, q, limit)
}

// Create inserts the tour row first to obtain its id, then bulk-inserts the
// stops, all in one transaction: either the whole itinerary lands or none of
// it does.
func (r *PostgresRepository) Create(ctx context.Context, req *tour.CreateTourRequest) (*tour.Tour, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*tour.Tour, error) {
		t, err := r.tours.WithTx(tx).Create(ctx, createValues(req))
		if err != nil {
			return nil, err
		}

		for i := range req.TourSpots {
			stop, err := insertTourSpot(ctx, tx, t.ID, &req.TourSpots[i])
			if err != nil {
				return nil, err
			}
			t.TourSpots = append(t.TourSpots, stop)
		}
		return t, nil
	})
}

func createValues(req *tour.CreateTourRequest) *query.Values {
	v := query.NewValues().
		Set("title", req.Title).
		Set("is_featured", req.IsFeatured)
	query.SetIf(v, "title_en", req.TitleEn)
	query.SetIf(v, "title_ja", req.TitleJa)
	query.SetIf(v, "title_zh", req.TitleZh)
	query.SetIf(v, "description", req.Description)
	query.SetIf(v, "description_en", req.DescriptionEn)
	query.SetIf(v, "description_ja", req.DescriptionJa)
	query.SetIf(v, "description_zh", req.DescriptionZh)
	query.SetIf(v, "duration_hours", req.DurationHours)
	query.SetIf(v, "distance_km", req.DistanceKm)
	query.SetIf(v, "difficulty", req.Difficulty)
	query.SetIf(v, "image_url", req.ImageURL)
	query.SetIf(v, "content_id", req.ContentID)
	if req.Images != nil {
		v.Set("images", req.Images)
	}
	if req.Tags != nil {
		v.Set("tags", req.Tags)
	}
	return v
}

// Update applies only the supplied fields; nil when no tour matched.
func (r *PostgresRepository) Update(ctx context.Context, id int64, req *tour.UpdateTourRequest) (*tour.Tour, error) {
	v := query.NewValues()
	query.SetIf(v, "title", req.Title)
	query.SetIf(v, "title_en", req.TitleEn)
	query.SetIf(v, "title_ja", req.TitleJa)
	query.SetIf(v, "title_zh", req.TitleZh)
	query.SetIf(v, "description", req.Description)
	query.SetIf(v, "description_en", req.DescriptionEn)
	query.SetIf(v, "description_ja", req.DescriptionJa)
	query.SetIf(v, "description_zh", req.DescriptionZh)
	query.SetIf(v, "duration_hours", req.DurationHours)
	query.SetIf(v, "distance_km", req.DistanceKm)
	query.SetIf(v, "difficulty", req.Difficulty)
	query.SetIf(v, "image_url", req.ImageURL)
	query.SetIf(v, "images", req.Images)
	query.SetIf(v, "tags", req.Tags)
	query.SetIf(v, "content_id", req.ContentID)
	query.SetIf(v, "is_featured", req.IsFeatured)
	return r.tours.Update(ctx, id, v)
}

// Delete removes the tour and its stops, children first.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		if _, err := tx.Exec(ctx, "DELETE FROM tour_spots WHERE tour_id = $1", id); err != nil {
			return false, fmt.Errorf("delete tour spots: %w", err)
		}
		return r.tours.WithTx(tx).Delete(ctx, id)
	})
}

const tourSpotColumns = `id, tour_id, spot_id, "order", note, note_en, duration_minutes, created_at`

// GetTourSpots returns the stops sorted ascending by order. Order values may
// repeat or have gaps; id breaks ties.
func (r *PostgresRepository) GetTourSpots(ctx context.Context, tourID int64) ([]*tour.TourSpot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tourSpotColumns+` FROM tour_spots WHERE tour_id = $1 ORDER BY "order" ASC, id ASC`,
		tourID)
	if err != nil {
		return nil, fmt.Errorf("query tour spots: %w", err)
	}
	defer rows.Close()

	stops := make([]*tour.TourSpot, 0)
	for rows.Next() {
		ts, err := scanTourSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tour spot: %w", err)
		}
		stops = append(stops, ts)
	}
	return stops, rows.Err()
}

// AddSpot appends one stop to an existing tour.
func (r *PostgresRepository) AddSpot(ctx context.Context, tourID int64, req *tour.CreateTourSpotRequest) (*tour.TourSpot, error) {
	return insertTourSpot(ctx, r.pool, tourID, req)
}

// RemoveSpot deletes a stop; false when the spot was not part of the tour.
func (r *PostgresRepository) RemoveSpot(ctx context.Context, tourID, spotID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM tour_spots WHERE tour_id = $1 AND spot_id = $2", tourID, spotID)
	if err != nil {
		return false, fmt.Errorf("remove tour spot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Reorder applies each (spot_id, order) pair independently inside one
// transaction. Pairs whose spot is not part of the tour are skipped; the
// returned count is the number of rows actually updated.
func (r *PostgresRepository) Reorder(ctx context.Context, tourID int64, pairs []tour.ReorderPair) (int, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int, error) {
		updated := 0
		for _, p := range pairs {
			tag, err := tx.Exec(ctx,
				`UPDATE tour_spots SET "order" = $1 WHERE tour_id = $2 AND spot_id = $3`,
				p.Order, tourID, p.SpotID)
			if err != nil {
				return 0, fmt.Errorf("reorder tour spot %d: %w", p.SpotID, err)
			}
			updated += int(tag.RowsAffected())
		}
		return updated, nil
	})
}

// Exists reports whether a tour row exists without loading it.
func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM tours WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tour exists: %w", err)
	}
	return exists, nil
}

func insertTourSpot(ctx context.Context, q query.Querier, tourID int64, req *tour.CreateTourSpotRequest) (*tour.TourSpot, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO tour_spots (tour_id, spot_id, "order", note, note_en, duration_minutes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+tourSpotColumns,
		tourID, req.SpotID, req.Order, req.Note, req.NoteEn, req.DurationMinutes)

	ts, err := scanTourSpot(row)
	if err != nil {
		return nil, fmt.Errorf("insert tour spot: %w", err)
	}
	return ts, nil
}

func scanTourSpot(row pgx.Row) (*tour.TourSpot, error) {
	var ts tour.TourSpot
	err := row.Scan(
		&ts.ID, &ts.TourID, &ts.SpotID, &ts.Order,
		&ts.Note, &ts.NoteEn, &ts.DurationMinutes, &ts.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
