package spot

import (
	"time"

	"github.com/lib/pq"
)

// Category represents valid spot categories
type Category string

const (
	CategoryDrama   Category = "drama"
	CategoryKpop    Category = "kpop"
	CategoryMovie   Category = "movie"
	CategoryVariety Category = "variety"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryDrama, CategoryKpop, CategoryMovie, CategoryVariety:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Spot represents a filming/visit location
type Spot struct {
	// Identity
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Multilingual names
	NameEn *string `json:"name_en"`
	NameJa *string `json:"name_ja"`
	NameZh *string `json:"name_zh"`

	// Multilingual descriptions
	Description   *string `json:"description"`
	DescriptionEn *string `json:"description_en"`
	DescriptionJa *string `json:"description_ja"`
	DescriptionZh *string `json:"description_zh"`

	// Location. Latitude and longitude are independently nullable.
	Address   *string  `json:"address"`
	AddressEn *string  `json:"address_en"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Category Category `json:"category"`

	// Media
	ImageURL *string        `json:"image_url"`
	Images   pq.StringArray `json:"images"`

	// Contact
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	Hours   *string `json:"hours"`

	Tags      pq.StringArray `json:"tags"`
	ViewCount int            `json:"view_count"`

	// ContentID is the external tour-API id, unique when present. The
	// crawler uses it to skip spots it already ingested.
	ContentID *string `json:"content_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Loaded on single-spot reads
	RelatedContents []*RelatedContent `json:"related_contents,omitempty"`
}

// RelatedContent is a lightweight child record describing what was filmed at
// a spot. Owned by the spot, cascade-deleted with it.
type RelatedContent struct {
	ID            int64     `json:"id"`
	SpotID        int64     `json:"spot_id"`
	Title         string    `json:"title"`
	TitleEn       *string   `json:"title_en"`
	ContentType   string    `json:"content_type"`
	Description   *string   `json:"description"`
	DescriptionEn *string   `json:"description_en"`
	ImageURL      *string   `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

