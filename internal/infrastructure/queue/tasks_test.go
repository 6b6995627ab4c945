package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kculture-backend/internal/domains/crawler"
)

func TestNewCrawlTask(t *testing.T) {
	t.Run("drama task carries its keywords", func(t *testing.T) {
		task, err := NewCrawlTask(crawler.KindDrama, []string{"도깨비 촬영지"})
		require.NoError(t, err)
		assert.Equal(t, TypeCrawlDrama, task.Type())

		var p CrawlPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &p))
		assert.Equal(t, []string{"도깨비 촬영지"}, p.Keywords)
	})

	t.Run("kpop task with seed keywords", func(t *testing.T) {
		task, err := NewCrawlTask(crawler.KindKpop, nil)
		require.NoError(t, err)
		assert.Equal(t, TypeCrawlKpop, task.Type())

		var p CrawlPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &p))
		assert.Empty(t, p.Keywords)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := NewCrawlTask(crawler.Kind("podcast"), nil)
		assert.Error(t, err)
	})
}
