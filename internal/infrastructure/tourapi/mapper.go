package tourapi

import (
	"regexp"
	"strings"

	"kculture-backend/internal/domains/spot"
	"kculture-backend/internal/shared/utils"
)

var homepageURLRegex = regexp.MustCompile(`https?://[^\s"'<>]+`)

// ToSpotRequest maps a tour API item onto a spot creation payload. The
// category comes from the crawl keyword, not from the item itself.
func ToSpotRequest(item *Item, category spot.Category, tags []string) *spot.CreateSpotRequest {
	req := &spot.CreateSpotRequest{
		Name:     utils.CleanText(item.Title),
		Category: category.String(),
		Tags:     tags,
	}

	if overview := utils.StripHTMLTags(item.Overview); overview != "" {
		req.Description = &overview
	}

	if addr := utils.CleanText(strings.TrimSpace(item.Addr1 + " " + item.Addr2)); addr != "" {
		req.Address = &addr
	}

	// mapy is latitude, mapx longitude; malformed values degrade to nil
	req.Latitude = utils.ParseCoordinate(item.MapY)
	req.Longitude = utils.ParseCoordinate(item.MapX)

	if item.FirstImage != "" {
		img := item.FirstImage
		req.ImageURL = &img
		req.Images = append(req.Images, img)
	}
	if item.FirstImage2 != "" && item.FirstImage2 != item.FirstImage {
		req.Images = append(req.Images, item.FirstImage2)
	}

	if tel := utils.CleanText(item.Tel); tel != "" {
		req.Phone = &tel
	}

	// homepage arrives wrapped in an anchor tag more often than not
	if u := homepageURLRegex.FindString(item.Homepage); u != "" {
		req.Website = &u
	}

	if item.ContentID != "" {
		id := item.ContentID
		req.ContentID = &id
	}

	return req
}
