package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/shared/query"
	"kculture-backend/pkg/database"
)

var spotColumns = []string{
	"id", "name", "name_en", "name_ja", "name_zh",
	"description", "description_en", "description_ja", "description_zh",
	"address", "address_en", "latitude", "longitude", "category",
	"image_url", "images", "phone", "website", "hours", "tags",
	"view_count", "content_id", "created_at", "updated_at",
}

// Descriptor wires the spots table into the generic query service.
func Descriptor() *query.Descriptor[spot.Spot] {
	return &query.Descriptor[spot.Spot]{
		Table:   "spots",
		Columns: spotColumns,
		Fields: map[string]query.Field{
			"id":             {Column: "id"},
			"name":           {Column: "name"},
			"name_en":        {Column: "name_en"},
			"name_ja":        {Column: "name_ja"},
			"name_zh":        {Column: "name_zh"},
			"description":    {Column: "description"},
			"description_en": {Column: "description_en"},
			"description_ja": {Column: "description_ja"},
			"description_zh": {Column: "description_zh"},
			"address":        {Column: "address"},
			"address_en":     {Column: "address_en"},
			"latitude":       {Column: "latitude"},
			"longitude":      {Column: "longitude"},
			"category":       {Column: "category"},
			"image_url":      {Column: "image_url"},
			"images":         {Column: "images", Array: true},
			"phone":          {Column: "phone"},
			"website":        {Column: "website"},
			"hours":          {Column: "hours"},
			"tags":           {Column: "tags", Array: true},
			"view_count":     {Column: "view_count"},
			"content_id":     {Column: "content_id"},
			"created_at":     {Column: "created_at"},
			"updated_at":     {Column: "updated_at"},
		},
		SearchFields: []string{
			"name", "name_en", "name_ja", "name_zh",
			"description", "description_en", "description_ja", "description_zh",
			"address", "address_en", "tags",
		},
		DefaultOrder: []string{"-view_count"},
		ViewCount:    "view_count",
		Scan:         scanSpot,
	}
}

func scanSpot(row pgx.Row) (*spot.Spot, error) {
	var s spot.Spot
	err := row.Scan(
		&s.ID, &s.Name, &s.NameEn, &s.NameJa, &s.NameZh,
		&s.Description, &s.DescriptionEn, &s.DescriptionJa, &s.DescriptionZh,
		&s.Address, &s.AddressEn, &s.Latitude, &s.Longitude, &s.Category,
		&s.ImageURL, pq.Array(&s.Images), &s.Phone, &s.Website, &s.Hours, pq.Array(&s.Tags),
		&s.ViewCount, &s.ContentID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// PostgresRepository owns all spot persistence: the generic service for the
// shared contract plus the hand-written child and cascade queries.
type PostgresRepository struct {
	pool  *pgxpool.Pool
	spots *query.Service[spot.Spot]
}

func NewPostgresRepository(pool *pgxpool.Pool) (*PostgresRepository, error) {
	svc, err := query.NewService(pool, Descriptor())
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{pool: pool, spots: svc}, nil
}

func (r *PostgresRepository) List(ctx context.Context, p query.ListParams) ([]*spot.Spot, int, error) {
	return r.spots.List(ctx, p)
}

// GetByID loads a spot plus its related contents. incrementView bumps the
// view counter as part of the read.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64, incrementView bool) (*spot.Spot, error) {
	s, err := r.spots.Get(ctx, id, incrementView)
	if err != nil || s == nil {
		return s, err
	}

	children, err := r.GetRelatedContents(ctx, id)
	if err != nil {
		return nil, err
	}
	s.RelatedContents = children
	return s, nil
}

func (r *PostgresRepository) Featured(ctx context.Context, limit int, filters map[string]interface{}) ([]*spot.Spot, error) {
	return r.spots.Featured(ctx, limit, filters)
}

func (r *PostgresRepository) Popular(ctx context.Context, limit int) ([]*spot.Spot, error) {
	return r.spots.Popular(ctx, limit)
}

func (r *PostgresRepository) Search(ctx context.Context, q string, limit int) ([]*spot.Spot, error) {
	return r.spots.Search(ctx, q, limit)
}

func (r *PostgresRepository) Count(ctx context.Context, filters map[string]interface{}) (int, error) {
	return r.spots.Count(ctx, filters)
}

// GetByContentID looks a spot up by its external tour-API id. Used by the
// crawler for dedup; nil means not ingested yet.
func (r *PostgresRepository) GetByContentID(ctx context.Context, contentID string) (*spot.Spot, error) {
	return r.spots.GetByField(ctx, "content_id", contentID)
}

// Create inserts the spot and its embedded related contents in one
// transaction.
func (r *PostgresRepository) Create(ctx context.Context, req *spot.CreateSpotRequest) (*spot.Spot, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*spot.Spot, error) {
		s, err := r.spots.WithTx(tx).Create(ctx, createValues(req))
		if err != nil {
			return nil, err
		}

		for i := range req.RelatedContents {
			child, err := insertRelatedContent(ctx, tx, s.ID, &req.RelatedContents[i])
			if err != nil {
				return nil, err
			}
			s.RelatedContents = append(s.RelatedContents, child)
		}
		return s, nil
	})
}

func createValues(req *spot.CreateSpotRequest) *query.Values {
	v := query.NewValues().
		Set("name", req.Name).
		Set("category", req.Category)
	query.SetIf(v, "name_en", req.NameEn)
	query.SetIf(v, "name_ja", req.NameJa)
	query.SetIf(v, "name_zh", req.NameZh)
	query.SetIf(v, "description", req.Description)
	query.SetIf(v, "description_en", req.DescriptionEn)
	query.SetIf(v, "description_ja", req.DescriptionJa)
	query.SetIf(v, "description_zh", req.DescriptionZh)
	query.SetIf(v, "address", req.Address)
	query.SetIf(v, "address_en", req.AddressEn)
	query.SetIf(v, "latitude", req.Latitude)
	query.SetIf(v, "longitude", req.Longitude)
	query.SetIf(v, "image_url", req.ImageURL)
	query.SetIf(v, "phone", req.Phone)
	query.SetIf(v, "website", req.Website)
	query.SetIf(v, "hours", req.Hours)
	query.SetIf(v, "content_id", req.ContentID)
	if req.Images != nil {
		v.Set("images", req.Images)
	}
	if req.Tags != nil {
		v.Set("tags", req.Tags)
	}
	return v
}

// Update applies only the supplied fields; nil when no spot matched.
func (r *PostgresRepository) Update(ctx context.Context, id int64, req *spot.UpdateSpotRequest) (*spot.Spot, error) {
	v := query.NewValues()
	query.SetIf(v, "name", req.Name)
	query.SetIf(v, "name_en", req.NameEn)
	query.SetIf(v, "name_ja", req.NameJa)
	query.SetIf(v, "name_zh", req.NameZh)
	query.SetIf(v, "description", req.Description)
	query.SetIf(v, "description_en", req.DescriptionEn)
	query.SetIf(v, "description_ja", req.DescriptionJa)
	query.SetIf(v, "description_zh", req.DescriptionZh)
	query.SetIf(v, "address", req.Address)
	query.SetIf(v, "address_en", req.AddressEn)
	query.SetIf(v, "latitude", req.Latitude)
	query.SetIf(v, "longitude", req.Longitude)
	query.SetIf(v, "category", req.Category)
	query.SetIf(v, "image_url", req.ImageURL)
	query.SetIf(v, "phone", req.Phone)
	query.SetIf(v, "website", req.Website)
	query.SetIf(v, "hours", req.Hours)
	query.SetIf(v, "images", req.Images)
	query.SetIf(v, "tags", req.Tags)
	return r.spots.Update(ctx, id, v)
}

// Delete removes the spot and its dependents: related contents plus any
// spot_contents and tour_spots links, children first, one transaction.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		for _, sql := range []string{
			"DELETE FROM spot_contents WHERE spot_id = $1",
			"DELETE FROM tour_spots WHERE spot_id = $1",
			"DELETE FROM related_contents WHERE spot_id = $1",
		} {
			if _, err := tx.Exec(ctx, sql, id); err != nil {
				return false, fmt.Errorf("delete spot children: %w", err)
			}
		}
		return r.spots.WithTx(tx).Delete(ctx, id)
	})
}

const relatedContentColumns = "id, spot_id, title, title_en, content_type, description, description_en, image_url, created_at"

func (r *PostgresRepository) GetRelatedContents(ctx context.Context, spotID int64) ([]*spot.RelatedContent, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+relatedContentColumns+" FROM related_contents WHERE spot_id = $1 ORDER BY id ASC", spotID)
	if err != nil {
		return nil, fmt.Errorf("query related contents: %w", err)
	}
	defer rows.Close()

	contents := make([]*spot.RelatedContent, 0)
	for rows.Next() {
		rc, err := scanRelatedContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan related content: %w", err)
		}
		contents = append(contents, rc)
	}
	return contents, rows.Err()
}

func insertRelatedContent(ctx context.Context, tx pgx.Tx, spotID int64, req *spot.CreateRelatedContentRequest) (*spot.RelatedContent, error) {
	row := tx.QueryRow(ctx,
		`INSERT INTO related_contents (spot_id, title, title_en, content_type, description, description_en, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+relatedContentColumns,
		spotID, req.Title, req.TitleEn, req.ContentType, req.Description, req.DescriptionEn, req.ImageURL)

	rc, err := scanRelatedContent(row)
	if err != nil {
		return nil, fmt.Errorf("insert related content: %w", err)
	}
	return rc, nil
}

func scanRelatedContent(row pgx.Row) (*spot.RelatedContent, error) {
	var rc spot.RelatedContent
	err := row.Scan(
		&rc.ID, &rc.SpotID, &rc.Title, &rc.TitleEn, &rc.ContentType,
		&rc.Description, &rc.DescriptionEn, &rc.ImageURL, &rc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}
