package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"kculture-backend/internal/domains/content"
	"kculture-backend/internal/domains/spot"
	spotrepo "kculture-backend/internal/domains/spot/repository"
	"kculture-backend/internal/shared/query"
	"kculture-backend/pkg/database"
)

var contentColumns = []string{
	"id", "title", "title_en", "title_ja", "title_zh",
	"description", "description_en", "description_ja", "description_zh",
	"content_type", "year", "director", "director_en", `"cast"`, "cast_en",
	"genre", "network", "episodes", "rating", "image_url", "images", "tags",
	"view_count", "tmdb_id", "imdb_id", "created_at", "updated_at",
}

// Descriptor wires the contents table into the generic query service.
func Descriptor() *query.Descriptor[content.Content] {
	return &query.Descriptor[content.Content]{
		Table:   "contents",
		Columns: contentColumns,
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
			"content_type":   {Column: "content_type"},
			"year":           {Column: "year"},
			"director":       {Column: "director"},
			"director_en":    {Column: "director_en"},
			"cast":           {Column: `"cast"`, Array: true},
			"cast_en":        {Column: "cast_en", Array: true},
			"genre":          {Column: "genre", Array: true},
			"network":        {Column: "network"},
			"episodes":       {Column: "episodes"},
			"rating":         {Column: "rating"},
			"image_url":      {Column: "image_url"},
			"images":         {Column: "images", Array: true},
			"tags":           {Column: "tags", Array: true},
			"view_count":     {Column: "view_count"},
			"tmdb_id":        {Column: "tmdb_id"},
			"imdb_id":        {Column: "imdb_id"},
			"created_at":     {Column: "created_at"},
			"updated_at":     {Column: "updated_at"},
		},
		SearchFields: []string{
			"title", "title_en", "title_ja", "title_zh",
			"description", "description_en", "description_ja", "description_zh",
			"director", "director_en", "cast", "cast_en", "genre", "tags",
		},
		DefaultOrder: []string{"-view_count", "-year"},
		ViewCount:    "view_count",
		Scan:         scanContent,
	}
}

func scanContent(row pgx.Row) (*content.Content, error) {
	var c content.Content
	err := row.Scan(
		&c.ID, &c.Title, &c.TitleEn, &c.TitleJa, &c.TitleZh,
		&c.Description, &c.DescriptionEn, &c.DescriptionJa, &c.DescriptionZh,
		&c.ContentType, &c.Year, &c.Director, &c.DirectorEn,
		pq.Array(&c.Cast), pq.Array(&c.CastEn), pq.Array(&c.Genre),
		&c.Network, &c.Episodes, &c.Rating, &c.ImageURL, pq.Array(&c.Images), pq.Array(&c.Tags),
		&c.ViewCount, &c.TmdbID, &c.ImdbID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PostgresRepository owns content persistence plus the spot_contents join.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	contents *query.Service[content.Content]
}

func NewPostgresRepository(pool *pgxpool.Pool) (*PostgresRepository, error) {
	svc, err := query.NewService(pool, Descriptor())
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{pool: pool, contents: svc}, nil
}

func (r *PostgresRepository) List(ctx context.Context, p query.ListParams) ([]*content.Content, int, error) {
	return r.contents.List(ctx, p)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64, incrementView bool) (*content.Content, error) {
	return r.contents.Get(ctx, id, incrementView)
}

// Featured ranks by editorial quality: rating first, then views. An empty
// contentType means all types.
func (r *PostgresRepository) Featured(ctx context.Context, limit int, contentType string) ([]*content.Content, error) {
	where, args := contentTypeFilter(contentType)
	sql := fmt.Sprintf(
		"SELECT %s FROM contents%s ORDER BY rating DESC NULLS LAST, view_count DESC, id ASC LIMIT $%d",
		strings.Join(contentColumns, ", "), where, len(args)+1)
	return r.queryMany(ctx, sql, append(args, limit)...)
}

// Popular ranks purely by views.
func (r *PostgresRepository) Popular(ctx context.Context, limit int, contentType string) ([]*content.Content, error) {
	filters := map[string]interface{}{}
	if contentType != "" {
		filters["content_type"] = contentType
	}
	return r.contents.Featured(ctx, limit, filters)
}

// Recent returns the newest titles.
func (r *PostgresRepository) Recent(ctx context.Context, limit int, contentType string) ([]*content.Content, error) {
	where, args := contentTypeFilter(contentType)
	sql := fmt.Sprintf(
		"SELECT %s FROM contents%s ORDER BY created_at DESC, id DESC LIMIT $%d",
		strings.Join(contentColumns, ", "), where, len(args)+1)
	return r.queryMany(ctx, sql, append(args, limit)...)
}

func contentTypeFilter(contentType string) (string, []interface{}) {
	if contentType == "" {
		return "", nil
	}
	return " WHERE content_type = $1", []interface{}{contentType}
}

func (r *PostgresRepository) Search(ctx context.Context, q string, limit int) ([]*content.Content, error) {
	return r.contents.Search(ctx, q, limit)
}

func (r *PostgresRepository) Create(ctx context.Context, req *content.CreateContentRequest) (*content.Content, error) {
	return r.contents.Create(ctx, createValues(req))
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, req *content.UpdateContentRequest) (*content.Content, error) {
	return r.contents.Update(ctx, id, updateValues(req))
}

// Delete removes the content and its spot links, children first.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		if _, err := tx.Exec(ctx, "DELETE FROM spot_contents WHERE content_id = $1", id); err != nil {
			return false, fmt.Errorf("delete content links: %w", err)
		}
		return r.contents.WithTx(tx).Delete(ctx, id)
	})
}

const spotContentColumns = "id, spot_id, content_id, scene_description, scene_description_en, episode_number, created_at"

// LinkSpot creates a spot_contents row. Duplicate pairs are allowed; there is
// no uniqueness constraint on (spot_id, content_id).
func (r *PostgresRepository) LinkSpot(ctx context.Context, contentID int64, req *content.LinkSpotRequest) (*content.SpotContent, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO spot_contents (spot_id, content_id, scene_description, scene_description_en, episode_number)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+spotContentColumns,
		req.SpotID, contentID, req.SceneDescription, req.SceneDescriptionEn, req.EpisodeNumber)

	sc, err := scanSpotContent(row)
	if err != nil {
		return nil, fmt.Errorf("link spot to content: %w", err)
	}
	return sc, nil
}

// UnlinkSpot removes the link rows for a pair; false when no link existed.
func (r *PostgresRepository) UnlinkSpot(ctx context.Context, contentID, spotID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM spot_contents WHERE content_id = $1 AND spot_id = $2", contentID, spotID)
	if err != nil {
		return false, fmt.Errorf("unlink spot from content: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetSpots join-fetches the spots linked to a content.
func (r *PostgresRepository) GetSpots(ctx context.Context, contentID int64) ([]*spot.Spot, error) {
	d := spotrepo.Descriptor()
	cols := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		cols[i] = "s." + col
	}

	sql := fmt.Sprintf(
		`SELECT DISTINCT %s FROM spots s
		 JOIN spot_contents sc ON sc.spot_id = s.id
		 WHERE sc.content_id = $1
		 ORDER BY s.id ASC`,
		strings.Join(cols, ", "))

	rows, err := r.pool.Query(ctx, sql, contentID)
	if err != nil {
		return nil, fmt.Errorf("query spots for content: %w", err)
	}
	defer rows.Close()

	spots := make([]*spot.Spot, 0)
	for rows.Next() {
		s, err := d.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan linked spot: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}

func (r *PostgresRepository) queryMany(ctx context.Context, sql string, args ...interface{}) ([]*content.Content, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query contents: %w", err)
	}
	defer rows.Close()

	contents := make([]*content.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func scanSpotContent(row pgx.Row) (*content.SpotContent, error) {
	var sc content.SpotContent
	err := row.Scan(
		&sc.ID, &sc.SpotID, &sc.ContentID,
		&sc.SceneDescription, &sc.SceneDescriptionEn, &sc.EpisodeNumber, &sc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func createValues(req *content.CreateContentRequest) *query.Values {
	v := query.NewValues().
		Set("title", req.Title).
		Set("content_type", req.ContentType)
	query.SetIf(v, "title_en", req.TitleEn)
	query.SetIf(v, "title_ja", req.TitleJa)
	query.SetIf(v, "title_zh", req.TitleZh)
	query.SetIf(v, "description", req.Description)
	query.SetIf(v, "description_en", req.DescriptionEn)
	query.SetIf(v, "description_ja", req.DescriptionJa)
	query.SetIf(v, "description_zh", req.DescriptionZh)
	query.SetIf(v, "year", req.Year)
	query.SetIf(v, "director", req.Director)
	query.SetIf(v, "director_en", req.DirectorEn)
	query.SetIf(v, "network", req.Network)
	query.SetIf(v, "episodes", req.Episodes)
	query.SetIf(v, "rating", req.Rating)
	query.SetIf(v, "image_url", req.ImageURL)
	query.SetIf(v, "tmdb_id", req.TmdbID)
	query.SetIf(v, "imdb_id", req.ImdbID)
	if req.Cast != nil {
		v.Set("cast", req.Cast)
	}
	if req.CastEn != nil {
		v.Set("cast_en", req.CastEn)
	}
	if req.Genre != nil {
		v.Set("genre", req.Genre)
	}
	if req.Images != nil {
		v.Set("images", req.Images)
	}
	if req.Tags != nil {
		v.Set("tags", req.Tags)
	}
	return v
}

func updateValues(req *content.UpdateContentRequest) *query.Values {
	v := query.NewValues()
	query.SetIf(v, "title", req.Title)
	query.SetIf(v, "title_en", req.TitleEn)
	query.SetIf(v, "title_ja", req.TitleJa)
	query.SetIf(v, "title_zh", req.TitleZh)
	query.SetIf(v, "description", req.Description)
	query.SetIf(v, "description_en", req.DescriptionEn)
	query.SetIf(v, "description_ja", req.DescriptionJa)
	query.SetIf(v, "description_zh", req.DescriptionZh)
	query.SetIf(v, "content_type", req.ContentType)
	query.SetIf(v, "year", req.Year)
	query.SetIf(v, "director", req.Director)
	query.SetIf(v, "director_en", req.DirectorEn)
	query.SetIf(v, "cast", req.Cast)
	query.SetIf(v, "cast_en", req.CastEn)
	query.SetIf(v, "genre", req.Genre)
	query.SetIf(v, "network", req.Network)
	query.SetIf(v, "episodes", req.Episodes)
	query.SetIf(v, "rating", req.Rating)
	query.SetIf(v, "image_url", req.ImageURL)
	query.SetIf(v, "images", req.Images)
	query.SetIf(v, "tags", req.Tags)
	query.SetIf(v, "tmdb_id", req.TmdbID)
	query.SetIf(v, "imdb_id", req.ImdbID)
	return v
}
