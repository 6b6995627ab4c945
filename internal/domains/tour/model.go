package tour

import (
	"time"

	"github.com/lib/pq"
)

// Tour represents a curated itinerary of spots.
type Tour struct {
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

	DurationHours *float64 `json:"duration_hours"`
	DistanceKm    *float64 `json:"distance_km"`

	// Difficulty is free text ("easy", "2-3 hours of walking"), not an enum.
	Difficulty *string `json:"difficulty"`

	ImageURL *string        `json:"image_url"`
	Images   pq.StringArray `json:"images"`

	Tags      pq.StringArray `json:"tags"`
	ViewCount int            `json:"view_count"`

	// ContentID optionally ties the tour to one content title.
	ContentID  *int64 `json:"content_id"`
	IsFeatured bool   `json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Loaded on single-tour reads, always sorted by order ascending
	TourSpots []*TourSpot `json:"tour_spots,omitempty"`
}

// TourSpot is one stop in a tour. Order values are not required to be unique
// or contiguous; listings sort ascending with id as tiebreak.
type TourSpot struct {
	ID              int64     `json:"id"`
	TourID          int64     `json:"tour_id"`
	SpotID          int64     `json:"spot_id"`
	Order           int       `json:"order"`
	Note            *string   `json:"note"`
	NoteEn          *string   `json:"note_en"`
	DurationMinutes *int      `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}
