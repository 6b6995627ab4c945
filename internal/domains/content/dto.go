package content

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateContentRequest - POST /api/v1/contents
type CreateContentRequest struct {
	Title         string   `json:"title" binding:"required"`
	TitleEn       *string  `json:"title_en"`
	TitleJa       *string  `json:"title_ja"`
	TitleZh       *string  `json:"title_zh"`
	Description   *string  `json:"description"`
	DescriptionEn *string  `json:"description_en"`
	DescriptionJa *string  `json:"description_ja"`
	DescriptionZh *string  `json:"description_zh"`
	ContentType   string   `json:"content_type" binding:"required"`
	Year          *int     `json:"year"`
	Director      *string  `json:"director"`
	DirectorEn    *string  `json:"director_en"`
	Cast          []string `json:"cast"`
	CastEn        []string `json:"cast_en"`
	Genre         []string `json:"genre"`
	Network       *string  `json:"network"`
	Episodes      *int     `json:"episodes"`
	Rating        *float64 `json:"rating"`
	ImageURL      *string  `json:"image_url"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	TmdbID        *string  `json:"tmdb_id"`
	ImdbID        *string  `json:"imdb_id"`
}

func (r CreateContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.ContentType,
			validation.Required.Error("content_type is required"),
			validation.By(validContentType),
		),
		validation.Field(&r.Year, validation.Min(1900), validation.Max(time.Now().Year()+1)),
		validation.Field(&r.Episodes, validation.Min(1)),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&r.ImageURL, validation.When(r.ImageURL != nil, is.URL)),
	)
}

// UpdateContentRequest - PUT /api/v1/contents/:id
// Partial update: nil pointer means "leave untouched".
type UpdateContentRequest struct {
	Title         *string   `json:"title"`
	TitleEn       *string   `json:"title_en"`
	TitleJa       *string   `json:"title_ja"`
	TitleZh       *string   `json:"title_zh"`
	Description   *string   `json:"description"`
	DescriptionEn *string   `json:"description_en"`
	DescriptionJa *string   `json:"description_ja"`
	DescriptionZh *string   `json:"description_zh"`
	ContentType   *string   `json:"content_type"`
	Year          *int      `json:"year"`
	Director      *string   `json:"director"`
	DirectorEn    *string   `json:"director_en"`
	Cast          *[]string `json:"cast"`
	CastEn        *[]string `json:"cast_en"`
	Genre         *[]string `json:"genre"`
	Network       *string   `json:"network"`
	Episodes      *int      `json:"episodes"`
	Rating        *float64  `json:"rating"`
	ImageURL      *string   `json:"image_url"`
	Images        *[]string `json:"images"`
	Tags          *[]string `json:"tags"`
	TmdbID        *string   `json:"tmdb_id"`
	ImdbID        *string   `json:"imdb_id"`
}

func (r UpdateContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.Length(1, 255))),
		validation.Field(&r.ContentType, validation.When(r.ContentType != nil, validation.By(validContentTypePtr))),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(10.0)),
	)
}

// LinkSpotRequest - POST /api/v1/contents/:id/spots
type LinkSpotRequest struct {
	SpotID             int64   `json:"spot_id" binding:"required"`
	SceneDescription   *string `json:"scene_description"`
	SceneDescriptionEn *string `json:"scene_description_en"`
	EpisodeNumber      *int    `json:"episode_number"`
}

func (r LinkSpotRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SpotID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.EpisodeNumber, validation.Min(1)),
	)
}

// ListContentsRequest carries the query-string inputs of content listings.
type ListContentsRequest struct {
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"page_size,default=20"`
	Query       string `form:"q"`
	ContentType string `form:"content_type"`
	Year        *int   `form:"year"`
}

func (r ListContentsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ContentType, validation.When(r.ContentType != "", validation.By(validContentType))),
	)
}

func validContentType(value interface{}) error {
	s, _ := value.(string)
	if !ContentType(s).IsValid() {
		return ErrInvalidContentType
	}
	return nil
}

func validContentTypePtr(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return validContentType(*s)
}
