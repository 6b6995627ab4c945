package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visitKoreaHTML = `<html><body>
<ul class="search_lst">
	<li><div class="tit">  Namsan Seoul Tower </div><div class="addr">Yongsan-gu, Seoul</div><div class="summary">Landmark   tower</div></li>
	<li><div class="tit">Bukchon Hanok Village</div><div class="addr">Jongno-gu, Seoul</div></li>
	<li><div class="tit">Namsan Seoul Tower</div><div class="addr">duplicate entry</div></li>
	<li><div class="addr">nameless entry is skipped</div></li>
</ul>
</body></html>`

const naverHTML = `<html><body>
<div class="place_section"><ul>
	<li><span class="place_bluelink">Gamcheon Culture Village</span><span class="addr">Saha-gu, Busan</span></li>
	<li><span class="place_bluelink">Haeundae Beach</span></li>
</ul></div>
</body></html>`

func newTestScraper(t *testing.T, html string) (*Scraper, *string) {
	t.Helper()
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return New(2*time.Second, WithBaseURLs(server.URL, server.URL)), &gotUA
}

func TestSearchVisitKorea(t *testing.T) {
	s, gotUA := newTestScraper(t, visitKoreaHTML)

	spots, err := s.SearchVisitKorea(context.Background(), "남산")
	require.NoError(t, err)
	require.Len(t, spots, 2, "duplicate and nameless entries are dropped")

	assert.Equal(t, "Namsan Seoul Tower", spots[0].Name)
	assert.Equal(t, "Yongsan-gu, Seoul", spots[0].Address)
	assert.Equal(t, "Landmark tower", spots[0].Description)
	assert.Equal(t, "visitkorea", spots[0].Source)
	assert.Equal(t, "Bukchon Hanok Village", spots[1].Name)

	assert.Contains(t, *gotUA, "Mozilla", "requests must carry a browser user agent")
}

func TestSearchNaverPlace(t *testing.T) {
	s, _ := newTestScraper(t, naverHTML)

	spots, err := s.SearchNaverPlace(context.Background(), "부산 명소")
	require.NoError(t, err)
	require.Len(t, spots, 2)
	assert.Equal(t, "Gamcheon Culture Village", spots[0].Name)
	assert.Equal(t, "Saha-gu, Busan", spots[0].Address)
	assert.Equal(t, "naver", spots[0].Source)
	assert.Empty(t, spots[1].Address)
}

func TestScrapeErrors(t *testing.T) {
	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		s := New(time.Second, WithBaseURLs(server.URL, server.URL))
		_, err := s.SearchVisitKorea(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("empty page yields no spots", func(t *testing.T) {
		s, _ := newTestScraper(t, "<html><body></body></html>")
		spots, err := s.SearchVisitKorea(context.Background(), "x")
		require.NoError(t, err)
		assert.Empty(t, spots)
	})
}
