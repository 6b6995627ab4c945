package tour

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateTourRequest - POST /api/v1/tours
// TourSpots are inserted as children of the new tour in one transaction.
type CreateTourRequest struct {
	Title         string   `json:"title" binding:"required"`
	TitleEn       *string  `json:"title_en"`
	TitleJa       *string  `json:"title_ja"`
	TitleZh       *string  `json:"title_zh"`
	Description   *string  `json:"description"`
	DescriptionEn *string  `json:"description_en"`
	DescriptionJa *string  `json:"description_ja"`
	DescriptionZh *string  `json:"description_zh"`
	DurationHours *float64 `json:"duration_hours"`
	DistanceKm    *float64 `json:"distance_km"`
	Difficulty    *string  `json:"difficulty"`
	ImageURL      *string  `json:"image_url"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	ContentID     *int64   `json:"content_id"`
	IsFeatured    bool     `json:"is_featured"`

	TourSpots []CreateTourSpotRequest `json:"tour_spots"`
}

func (r CreateTourRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.DurationHours, validation.Min(0.0)),
		validation.Field(&r.DistanceKm, validation.Min(0.0)),
		validation.Field(&r.ImageURL, validation.When(r.ImageURL != nil, is.URL)),
		validation.Field(&r.TourSpots),
	)
}

// CreateTourSpotRequest is one stop of a tour, embedded in tour creation or
// sent alone when adding a stop to an existing tour.
type CreateTourSpotRequest struct {
	SpotID          int64   `json:"spot_id" binding:"required"`
	Order           int     `json:"order"`
	Note            *string `json:"note"`
	NoteEn          *string `json:"note_en"`
	DurationMinutes *int    `json:"duration_minutes"`
}

func (r CreateTourSpotRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SpotID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Order, validation.Min(0)),
		validation.Field(&r.DurationMinutes, validation.Min(1)),
	)
}

// UpdateTourRequest - PUT /api/v1/tours/:id
// Partial update: nil pointer means "leave untouched".
type UpdateTourRequest struct {
	Title         *string   `json:"title"`
	TitleEn       *string   `json:"title_en"`
	TitleJa       *string   `json:"title_ja"`
	TitleZh       *string   `json:"title_zh"`
	Description   *string   `json:"description"`
	DescriptionEn *string   `json:"description_en"`
	DescriptionJa *string   `json:"description_ja"`
	DescriptionZh *string   `json:"description_zh"`
	DurationHours *float64  `json:"duration_hours"`
	DistanceKm    *float64  `json:"distance_km"`
	Difficulty    *string   `json:"difficulty"`
	ImageURL      *string   `json:"image_url"`
	Images        *[]string `json:"images"`
	Tags          *[]string `json:"tags"`
	ContentID     *int64    `json:"content_id"`
	IsFeatured    *bool     `json:"is_featured"`
}

func (r UpdateTourRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.Length(1, 255))),
		validation.Field(&r.DurationHours, validation.Min(0.0)),
		validation.Field(&r.DistanceKm, validation.Min(0.0)),
	)
}

// ReorderRequest - PUT /api/v1/tours/:id/spots/reorder
// Each pair is applied independently; pairs whose spot is not part of the
// tour are skipped, and duplicate resulting order values are permitted.
type ReorderRequest struct {
	Orders []ReorderPair `json:"orders" binding:"required"`
}

type ReorderPair struct {
	SpotID int64 `json:"spot_id"`
	Order  int   `json:"order"`
}

func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Orders, validation.Required.Error("orders is required")),
	)
}

// ListToursRequest carries the query-string inputs of tour listings.
type ListToursRequest struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Query    string `form:"q"`
	Featured *bool  `form:"featured"`
}
