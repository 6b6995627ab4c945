package crawler

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CrawlRequest optionally overrides the predefined keyword seeds.
type CrawlRequest struct {
	Keywords []string `json:"keywords"`
}

func (r CrawlRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Keywords,
			validation.Length(0, 50),
			validation.Each(validation.Required, validation.Length(1, 100)),
		),
	)
}
