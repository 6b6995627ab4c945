package tourapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"kculture-backend/internal/config"
)

// Client talks to the Korea Tourism Organization open API.
// All endpoints share the same envelope and the same fixed query params.
type Client struct {
	baseURL    string
	serviceKey string
	maxRetries int
	httpClient *http.Client
}

func NewClient(cfg config.TourAPIConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Item is one record of the tour API. Coordinates and ids arrive as strings.
type Item struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	Title         string `json:"title"`
	Addr1         string `json:"addr1"`
	Addr2         string `json:"addr2"`
	MapX          string `json:"mapx"` // longitude
	MapY          string `json:"mapy"` // latitude
	FirstImage    string `json:"firstimage"`
	FirstImage2   string `json:"firstimage2"`
	Tel           string `json:"tel"`
	Homepage      string `json:"homepage"`
	Overview      string `json:"overview"`
}

type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      rawItems `json:"items"`
			NumOfRows  int      `json:"numOfRows"`
			PageNo     int      `json:"pageNo"`
			TotalCount int      `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// rawItems tolerates the API's three shapes: an item array, a single item
// object, and an empty string when there are no results.
type rawItems struct {
	Items []Item
}

func (r *rawItems) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		// "items": "" when empty
		r.Items = nil
		return nil
	}
	if len(wrapper.Item) == 0 {
		r.Items = nil
		return nil
	}

	var list []Item
	if err := json.Unmarshal(wrapper.Item, &list); err == nil {
		r.Items = list
		return nil
	}

	var single Item
	if err := json.Unmarshal(wrapper.Item, &single); err != nil {
		return fmt.Errorf("tourapi: unexpected items shape: %w", err)
	}
	r.Items = []Item{single}
	return nil
}

// SearchKeyword runs searchKeyword1 and returns the matching items.
func (c *Client) SearchKeyword(ctx context.Context, keyword string, numOfRows int) ([]Item, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("numOfRows", fmt.Sprintf("%d", numOfRows))
	params.Set("arrange", "A")
	return c.fetchItems(ctx, "searchKeyword1", params)
}

// DetailCommon runs detailCommon1 for one content id; the interesting part is
// the overview text.
func (c *Client) DetailCommon(ctx context.Context, contentID string) (*Item, error) {
	params := url.Values{}
	params.Set("contentId", contentID)
	params.Set("defaultYN", "Y")
	params.Set("overviewYN", "Y")
	params.Set("addrinfoYN", "Y")
	params.Set("mapinfoYN", "Y")
	params.Set("firstImageYN", "Y")

	items, err := c.fetchItems(ctx, "detailCommon1", params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// DetailIntro runs detailIntro1 for type-specific fields (hours, parking).
func (c *Client) DetailIntro(ctx context.Context, contentID, contentTypeID string) (*Item, error) {
	params := url.Values{}
	params.Set("contentId", contentID)
	params.Set("contentTypeId", contentTypeID)

	items, err := c.fetchItems(ctx, "detailIntro1", params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// AreaBasedList runs areaBasedList1 for one area code.
func (c *Client) AreaBasedList(ctx context.Context, areaCode string, numOfRows int) ([]Item, error) {
	params := url.Values{}
	params.Set("areaCode", areaCode)
	params.Set("numOfRows", fmt.Sprintf("%d", numOfRows))
	params.Set("arrange", "A")
	return c.fetchItems(ctx, "areaBasedList1", params)
}

func (c *Client) fetchItems(ctx context.Context, endpoint string, params url.Values) ([]Item, error) {
	params.Set("serviceKey", c.serviceKey)
	params.Set("MobileOS", "ETC")
	params.Set("MobileApp", "KCultureSpot")
	params.Set("_type", "json")

	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	body, err := c.getWithRetry(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("tourapi: decode %s response: %w", endpoint, err)
	}

	if code := env.Response.Header.ResultCode; code != "0000" && code != "" {
		return nil, fmt.Errorf("tourapi: %s returned %s (%s)",
			endpoint, code, env.Response.Header.ResultMsg)
	}

	return env.Response.Body.Items.Items, nil
}

// getWithRetry retries transport failures and 5xx responses with a small
// exponential backoff, capped at maxRetries attempts total.
func (c *Client) getWithRetry(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(1<<(attempt-2)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Int("attempt", attempt).Msg("tour API request failed")
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("tourapi: upstream returned %d", resp.StatusCode)
			log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt).Msg("tour API server error")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("tourapi: unexpected status %d", resp.StatusCode)
		}

		return body, nil
	}

	return nil, fmt.Errorf("tourapi: all %d attempts failed: %w", c.maxRetries, lastErr)
}
