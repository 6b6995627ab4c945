package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"kculture-backend/internal/shared/utils"
)

const (
	defaultVisitKoreaURL = "https://korean.visitkorea.or.kr"
	defaultNaverURL      = "https://search.naver.com"

	// a desktop browser UA; both sites serve stripped-down markup to
	// unknown agents
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// ScrapedSpot is a candidate location found on a web page. Only the name is
// guaranteed; everything else is best effort.
type ScrapedSpot struct {
	Name        string
	Address     string
	Description string
	Source      string
}

// Scraper pulls candidate spots from Visit Korea search results and Naver
// place boxes.
type Scraper struct {
	visitKoreaURL string
	naverURL      string
	httpClient    *http.Client
}

type Option func(*Scraper)

// WithBaseURLs overrides the scraped sites, used in tests.
func WithBaseURLs(visitKorea, naver string) Option {
	return func(s *Scraper) {
		s.visitKoreaURL = visitKorea
		s.naverURL = naver
	}
}

func New(timeout time.Duration, opts ...Option) *Scraper {
	s := &Scraper{
		visitKoreaURL: defaultVisitKoreaURL,
		naverURL:      defaultNaverURL,
		httpClient:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchVisitKorea scrapes the Visit Korea search listing for a keyword.
func (s *Scraper) SearchVisitKorea(ctx context.Context, keyword string) ([]ScrapedSpot, error) {
	searchURL := fmt.Sprintf("%s/search/search_list.do?keyword=%s",
		s.visitKoreaURL, url.QueryEscape(keyword))

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var spots []ScrapedSpot
	doc.Find("ul.search_lst li").Each(func(_ int, sel *goquery.Selection) {
		name := utils.CleanText(sel.Find(".tit").Text())
		if name == "" {
			return
		}
		spots = append(spots, ScrapedSpot{
			Name:        name,
			Address:     utils.CleanText(sel.Find(".area_address, .addr").Text()),
			Description: utils.CleanText(sel.Find(".service_txt, .summary").Text()),
			Source:      "visitkorea",
		})
	})

	return dedupeByName(spots), nil
}

// SearchNaverPlace scrapes the place boxes of a Naver web search.
func (s *Scraper) SearchNaverPlace(ctx context.Context, keyword string) ([]ScrapedSpot, error) {
	searchURL := fmt.Sprintf("%s/search.naver?query=%s",
		s.naverURL, url.QueryEscape(keyword))

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var spots []ScrapedSpot
	doc.Find("div.place_section li, ul.list_place li").Each(func(_ int, sel *goquery.Selection) {
		name := utils.CleanText(sel.Find(".place_bluelink, .name").First().Text())
		if name == "" {
			return
		}
		spots = append(spots, ScrapedSpot{
			Name:    name,
			Address: utils.CleanText(sel.Find(".addr, .address").First().Text()),
			Source:  "naver",
		})
	})

	return dedupeByName(spots), nil
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.5")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper: fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", pageURL).Msg("scrape target returned non-200")
		return nil, fmt.Errorf("scraper: %s returned %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scraper: parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// dedupeByName drops later duplicates, keeping first-seen order.
func dedupeByName(spots []ScrapedSpot) []ScrapedSpot {
	seen := make(map[string]bool, len(spots))
	out := spots[:0]
	for _, sp := range spots {
		if seen[sp.Name] {
			continue
		}
		seen[sp.Name] = true
		out = append(out, sp)
	}
	return out
}
