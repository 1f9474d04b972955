package chatclient

import (
	"context"
	"sync"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
)

// RecentFetcher 最近對話列表來源（REST）
type RecentFetcher interface {
	FetchRecent(ctx context.Context) ([]domain.RecentConversation, error)
}

// recentTTL 最近對話快取存活時間
const recentTTL = 5 * time.Minute

// RecentCache 最近對話列表的 TTL 快取。
// 任何收送訊息都會 Invalidate，讓下一次讀取重新抓。
type RecentCache struct {
	fetcher RecentFetcher
	now     func() time.Time

	mu       sync.Mutex
	data     []domain.RecentConversation
	loadedAt time.Time
}

// NewRecentCache create RecentCache
func NewRecentCache(fetcher RecentFetcher) *RecentCache {
	return &RecentCache{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// Get 快取命中時回傳列表副本，過期或未載入回傳 false
func (c *RecentCache) Get() ([]domain.RecentConversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadedAt.IsZero() || c.now().Sub(c.loadedAt) >= recentTTL {
		return nil, false
	}
	return copyRecent(c.data), true
}

// Load 命中快取直接回傳，否則重新抓取並更新時間戳。
// 抓取失敗回傳空列表且不寫入快取，下一次會再重試。
func (c *RecentCache) Load(ctx context.Context) []domain.RecentConversation {
	if cached, ok := c.Get(); ok {
		return cached
	}

	fetched, err := c.fetcher.FetchRecent(ctx)
	if err != nil {
		logger.Log.Errorf("chatclient recent fetch error:", err)
		return []domain.RecentConversation{}
	}

	c.mu.Lock()
	c.data = append([]domain.RecentConversation(nil), fetched...)
	c.loadedAt = c.now()
	out := copyRecent(c.data)
	c.mu.Unlock()
	return out
}

// Invalidate 使快取立即失效
func (c *RecentCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.loadedAt = time.Time{}
}

func copyRecent(list []domain.RecentConversation) []domain.RecentConversation {
	out := make([]domain.RecentConversation, len(list))
	copy(out, list)
	return out
}
