package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// feedCacheTTL bounds how stale a memoized feed page can get
const feedCacheTTL = 30 * time.Second

// FeedCache memoizes rendered feed pages. All three operations are
// best-effort: a cache failure must never fail the request, so errors are
// logged here and a miss is reported instead.
type FeedCache interface {
	Get(ctx context.Context, userID string, page, limit int) ([]byte, bool)
	Set(ctx context.Context, userID string, page, limit int, payload []byte)

	// Invalidate drops every cached page owned by the user. This is the
	// coarse write-path invalidation: only the author's own pages are
	// cleared, a peer's pages age out within the TTL.
	Invalidate(ctx context.Context, userID string)
}

type feedCache struct {
	client *redis.Client
}

func NewFeedCache(client *redis.Client) FeedCache {
	return &feedCache{client: client}
}

func feedKey(userID string, page, limit int) string {
	return fmt.Sprintf("feed:%s:%d:%d", userID, page, limit)
}

func feedKeyPrefix(userID string) string {
	return fmt.Sprintf("feed:%s:*", userID)
}

func (c *feedCache) Get(ctx context.Context, userID string, page, limit int) ([]byte, bool) {
	payload, err := c.client.Get(ctx, feedKey(userID, page, limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Feed cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *feedCache) Set(ctx context.Context, userID string, page, limit int, payload []byte) {
	err := c.client.Set(ctx, feedKey(userID, page, limit), payload, feedCacheTTL).Err()
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Feed cache write failed")
	}
}

func (c *feedCache) Invalidate(ctx context.Context, userID string) {
	iter := c.client.Scan(ctx, 0, feedKeyPrefix(userID), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("key", iter.Val()).Msg("Feed cache delete failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Feed cache invalidation scan failed")
	}
}
