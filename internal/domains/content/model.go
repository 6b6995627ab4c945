package content

import (
	"time"

	"github.com/lib/pq"
)

// ContentType represents valid content kinds
type ContentType string

const (
	TypeDrama   ContentType = "drama"
	TypeMovie   ContentType = "movie"
	TypeMusic   ContentType = "music"
	TypeVariety ContentType = "variety"
)

func (t ContentType) IsValid() bool {
	switch t {
	case TypeDrama, TypeMovie, TypeMusic, TypeVariety:
		return true
	}
	return false
}

func (t ContentType) String() string {
	return string(t)
}

// Content represents a drama/movie/music/variety title, independent of any
// location.
type Content struct {
	// Identity
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Multilingual titles
	TitleEn *string `json:"title_en"`
	TitleJa *string `json:"title_ja"`
	TitleZh *string `json:"title_zh"`

	// Multilingual descriptions
	Description   *string `json:"description"`
	DescriptionEn *string `json:"description_en"`
	DescriptionJa *string `json:"description_ja"`
	DescriptionZh *string `json:"description_zh"`

	ContentType ContentType `json:"content_type"`
	Year        *int        `json:"year"`

	// Media metadata
	Director   *string        `json:"director"`
	DirectorEn *string        `json:"director_en"`
	Cast       pq.StringArray `json:"cast"`
	CastEn     pq.StringArray `json:"cast_en"`
	Genre      pq.StringArray `json:"genre"`
	Network    *string        `json:"network"`
	Episodes   *int           `json:"episodes"`
	Rating     *float64       `json:"rating"`

	ImageURL *string        `json:"image_url"`
	Images   pq.StringArray `json:"images"`

	Tags      pq.StringArray `json:"tags"`
	ViewCount int            `json:"view_count"`

	// External ids
	TmdbID *string `json:"tmdb_id"`
	ImdbID *string `json:"imdb_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpotContent links a content to a filming spot, optionally describing the
// scene. The pair is not required to be unique.
type SpotContent struct {
	ID                 int64     `json:"id"`
	SpotID             int64     `json:"spot_id"`
	ContentID          int64     `json:"content_id"`
	SceneDescription   *string   `json:"scene_description"`
	SceneDescriptionEn *string   `json:"scene_description_en"`
	EpisodeNumber      *int      `json:"episode_number"`
	CreatedAt          time.Time `json:"created_at"`
}
