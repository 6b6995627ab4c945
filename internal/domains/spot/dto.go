package spot

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateSpotRequest - POST /api/v1/spots
type CreateSpotRequest struct {
	Name          string   `json:"name" binding:"required"`
	NameEn        *string  `json:"name_en"`
	NameJa        *string  `json:"name_ja"`
	NameZh        *string  `json:"name_zh"`
	Description   *string  `json:"description"`
	DescriptionEn *string  `json:"description_en"`
	DescriptionJa *string  `json:"description_ja"`
	DescriptionZh *string  `json:"description_zh"`
	Address       *string  `json:"address"`
	AddressEn     *string  `json:"address_en"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Category      string   `json:"category" binding:"required"`
	ImageURL      *string  `json:"image_url"`
	Images        []string `json:"images"`
	Phone         *string  `json:"phone"`
	Website       *string  `json:"website"`
	Hours         *string  `json:"hours"`
	Tags          []string `json:"tags"`
	ContentID     *string  `json:"content_id"`

	// RelatedContents are created as owned children in the same transaction
	RelatedContents []CreateRelatedContentRequest `json:"related_contents"`
}

func (r CreateSpotRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.By(validCategory),
		),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&r.ImageURL, validation.When(r.ImageURL != nil, is.URL)),
		validation.Field(&r.Website, validation.When(r.Website != nil, is.URL)),
		validation.Field(&r.RelatedContents),
	)
}

// CreateRelatedContentRequest is the embedded child payload of spot creation.
type CreateRelatedContentRequest struct {
	Title         string  `json:"title" binding:"required"`
	TitleEn       *string `json:"title_en"`
	ContentType   string  `json:"content_type" binding:"required"`
	Description   *string `json:"description"`
	DescriptionEn *string `json:"description_en"`
	ImageURL      *string `json:"image_url"`
}

func (r CreateRelatedContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ContentType, validation.Required, validation.Length(1, 50)),
	)
}

// UpdateSpotRequest - PUT /api/v1/spots/:id
// Partial update: nil pointer means "leave untouched", never "set null".
type UpdateSpotRequest struct {
	Name          *string   `json:"name"`
	NameEn        *string   `json:"name_en"`
	NameJa        *string   `json:"name_ja"`
	NameZh        *string   `json:"name_zh"`
	Description   *string   `json:"description"`
	DescriptionEn *string   `json:"description_en"`
	DescriptionJa *string   `json:"description_ja"`
	DescriptionZh *string   `json:"description_zh"`
	Address       *string   `json:"address"`
	AddressEn     *string   `json:"address_en"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	Category      *string   `json:"category"`
	ImageURL      *string   `json:"image_url"`
	Images        *[]string `json:"images"`
	Phone         *string   `json:"phone"`
	Website       *string   `json:"website"`
	Hours         *string   `json:"hours"`
	Tags          *[]string `json:"tags"`
}

func (r UpdateSpotRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != nil, validation.Length(1, 255))),
		validation.Field(&r.Category, validation.When(r.Category != nil, validation.By(validCategoryPtr))),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// ListSpotsRequest carries the query-string inputs of spot listings.
type ListSpotsRequest struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Query    string `form:"q"`
	Category string `form:"category"`
}

func (r ListSpotsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.When(r.Category != "", validation.By(validCategory))),
	)
}

func validCategory(value interface{}) error {
	s, _ := value.(string)
	if !Category(s).IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

func validCategoryPtr(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return validCategory(*s)
}
