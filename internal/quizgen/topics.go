package quizgen

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/samber/lo"
)

// FallbackTopics is shown when suggestions are unavailable.
func FallbackTopics() []Topic {
	return []Topic{
		{Label: "World History", Category: "History"},
		{Label: "Modern Tech", Category: "Technology"},
		{Label: "Pop Culture", Category: "Entertainment"},
		{Label: "Nature & Space", Category: "Science"},
	}
}

// TopicsOrFallback returns topics, or FallbackTopics when topics is empty.
func TopicsOrFallback(topics []Topic) []Topic {
	if len(topics) == 0 {
		return FallbackTopics()
	}
	return topics
}

// normalizeTopics trims labels and categories, drops entries with an empty
// field, removes case-insensitive duplicate labels and caps the list at max.
func normalizeTopics(in []Topic, max int) []Topic {
	out := lo.FilterMap(in, func(t Topic, _ int) (Topic, bool) {
		t.Label = strings.TrimSpace(t.Label)
		t.Category = strings.TrimSpace(t.Category)
		return t, t.Label != "" && t.Category != ""
	})
	out = lo.UniqBy(out, func(t Topic) string {
		return strings.ToLower(t.Label)
	})
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

const topicCacheSize = 8

// TopicCache keeps recent suggestion lists for a fixed time so returning to
// the topic screen does not call the model again.
type TopicCache struct {
	lru *expirable.LRU[string, []Topic]
}

// NewTopicCache creates a cache with the given TTL. A non-positive ttl
// returns a cache that stores nothing.
func NewTopicCache(ttl time.Duration) *TopicCache {
	if ttl <= 0 {
		return &TopicCache{}
	}
	return &TopicCache{lru: expirable.NewLRU[string, []Topic](topicCacheSize, nil, ttl)}
}

// Get returns a copy of the cached list for key.
func (c *TopicCache) Get(key string) ([]Topic, bool) {
	if c == nil || c.lru == nil {
		return nil, false
	}
	topics, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return append([]Topic(nil), topics...), true
}

// Add stores topics under key.
func (c *TopicCache) Add(key string, topics []Topic) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(key, append([]Topic(nil), topics...))
}
