package chatclient

import (
	"context"
	"testing"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func msgAt(id, senderID, receiverID, content string, at time.Time) domain.DirectMessage {
	return domain.DirectMessage{
		ID:        id,
		Sender:    domain.UserRef{ID: senderID},
		Receiver:  domain.UserRef{ID: receiverID},
		Content:   content,
		CreatedAt: at,
	}
}

// 同一筆訊息（相同 ID）append 兩次只會出現一次
func TestMessageCache_AppendIdempotent(t *testing.T) {
	logger.SetNewNop()
	cache := NewMessageCache(new(MockHistoryFetcher))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := msgAt("m1", "u2", "u1", "hello", base)

	first := cache.Append("u2", msg)
	second := cache.Append("u2", msg)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, "m1", second[0].ID)
}

// 亂序 append (3,1,2) 之後列表依 CreatedAt 遞增 (1,2,3)
func TestMessageCache_AppendSortsByCreatedAt(t *testing.T) {
	logger.SetNewNop()
	cache := NewMessageCache(new(MockHistoryFetcher))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m1 := msgAt("m1", "u2", "u1", "first", base)
	m2 := msgAt("m2", "u1", "u2", "second", base.Add(time.Minute))
	m3 := msgAt("m3", "u2", "u1", "third", base.Add(2*time.Minute))

	cache.Append("u2", m3)
	cache.Append("u2", m1)
	list := cache.Append("u2", m2)

	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

// 相同 CreatedAt 的訊息維持插入順序（穩定排序）
func TestMessageCache_AppendStableOnEqualTimestamp(t *testing.T) {
	logger.SetNewNop()
	cache := NewMessageCache(new(MockHistoryFetcher))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.Append("u2", msgAt("ma", "u2", "u1", "a", base))
	list := cache.Append("u2", msgAt("mb", "u2", "u1", "b", base))

	assert.Equal(t, "ma", list[0].ID)
	assert.Equal(t, "mb", list[1].ID)
}

// 第二次 LoadHistory 直接回快取，不再打 fetcher
func TestMessageCache_LoadHistoryCacheFirst(t *testing.T) {
	logger.SetNewNop()
	fetcher := new(MockHistoryFetcher)
	cache := NewMessageCache(fetcher)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []domain.DirectMessage{msgAt("m1", "u2", "u1", "hi", base)}
	fetcher.On("FetchHistory", mock.Anything, "u2").Return(history, nil).Once()

	first, fromCache := cache.LoadHistory(context.Background(), "u2", false)
	assert.False(t, fromCache)
	assert.Len(t, first, 1)

	second, fromCache := cache.LoadHistory(context.Background(), "u2", false)
	assert.True(t, fromCache)
	assert.Len(t, second, 1)

	fetcher.AssertNumberOfCalls(t, "FetchHistory", 1)
}

// forceRefresh 會重新打 fetcher 並整份覆蓋快取
func TestMessageCache_LoadHistoryForceRefresh(t *testing.T) {
	logger.SetNewNop()
	fetcher := new(MockHistoryFetcher)
	cache := NewMessageCache(fetcher)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fetcher.On("FetchHistory", mock.Anything, "u2").
		Return([]domain.DirectMessage{msgAt("m1", "u2", "u1", "hi", base)}, nil).Once()
	fetcher.On("FetchHistory", mock.Anything, "u2").
		Return([]domain.DirectMessage{
			msgAt("m1", "u2", "u1", "hi", base),
			msgAt("m2", "u1", "u2", "yo", base.Add(time.Minute)),
		}, nil).Once()

	cache.LoadHistory(context.Background(), "u2", false)
	refreshed, fromCache := cache.LoadHistory(context.Background(), "u2", true)

	assert.False(t, fromCache)
	assert.Len(t, refreshed, 2)
	fetcher.AssertNumberOfCalls(t, "FetchHistory", 2)
}

// fetch 失敗回傳空列表且不標記已載入，下一次會重試
func TestMessageCache_LoadHistoryFetchError(t *testing.T) {
	logger.SetNewNop()
	fetcher := new(MockHistoryFetcher)
	cache := NewMessageCache(fetcher)

	fetcher.On("FetchHistory", mock.Anything, "u2").
		Return(nil, assert.AnError).Once()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fetcher.On("FetchHistory", mock.Anything, "u2").
		Return([]domain.DirectMessage{msgAt("m1", "u2", "u1", "hi", base)}, nil).Once()

	first, fromCache := cache.LoadHistory(context.Background(), "u2", false)
	assert.False(t, fromCache)
	assert.Empty(t, first)

	_, loaded := cache.Get("u2")
	assert.False(t, loaded)

	second, _ := cache.LoadHistory(context.Background(), "u2", false)
	assert.Len(t, second, 1)
}

// reentrantFetcher 第一次 fetch 期間觸發同一對話的新一輪載入，
// 模擬使用者快速連續切換，驗證過期回應被丟棄
type reentrantFetcher struct {
	cache *MessageCache
	calls int
	stale []domain.DirectMessage
	fresh []domain.DirectMessage
}

func (f *reentrantFetcher) FetchHistory(ctx context.Context, counterpartID string) ([]domain.DirectMessage, error) {
	f.calls++
	if f.calls == 1 {
		f.cache.LoadHistory(ctx, counterpartID, true)
		return f.stale, nil
	}
	return f.fresh, nil
}

func TestMessageCache_StaleFetchDiscarded(t *testing.T) {
	logger.SetNewNop()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fetcher := &reentrantFetcher{
		stale: []domain.DirectMessage{msgAt("old", "u2", "u1", "stale", base)},
		fresh: []domain.DirectMessage{msgAt("new", "u2", "u1", "fresh", base.Add(time.Minute))},
	}
	cache := NewMessageCache(fetcher)
	fetcher.cache = cache

	result, fromCache := cache.LoadHistory(context.Background(), "u2", false)

	// 外層那一輪的結果已過期，快取保留較新一輪的內容
	assert.False(t, fromCache)
	assert.Len(t, result, 1)
	assert.Equal(t, "new", result[0].ID)

	current, loaded := cache.Get("u2")
	assert.True(t, loaded)
	assert.Equal(t, "new", current[0].ID)
}

// 兩個視圖訂閱同一對話時收到一致的列表
func TestMessageCache_TwoSubscribersSeeSameList(t *testing.T) {
	logger.SetNewNop()
	cache := NewMessageCache(new(MockHistoryFetcher))

	var viewA, viewB []domain.DirectMessage
	unsubA := cache.Subscribe("u2", func(msgs []domain.DirectMessage) { viewA = msgs })
	defer unsubA()
	unsubB := cache.Subscribe("u2", func(msgs []domain.DirectMessage) { viewB = msgs })
	defer unsubB()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.Append("u2", msgAt("m1", "u2", "u1", "hi", base))
	cache.Append("u2", msgAt("m2", "u1", "u2", "yo", base.Add(time.Minute)))

	assert.Len(t, viewA, 2)
	assert.Equal(t, viewA, viewB)
}

// 取消訂閱之後不再收到更新
func TestMessageCache_Unsubscribe(t *testing.T) {
	logger.SetNewNop()
	cache := NewMessageCache(new(MockHistoryFetcher))

	notified := 0
	unsub := cache.Subscribe("u2", func([]domain.DirectMessage) { notified++ })

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.Append("u2", msgAt("m1", "u2", "u1", "hi", base))
	unsub()
	cache.Append("u2", msgAt("m2", "u1", "u2", "yo", base.Add(time.Minute)))

	assert.Equal(t, 1, notified)
}

// ClearAll 之後所有對話都要重新載入
func TestMessageCache_ClearAll(t *testing.T) {
	logger.SetNewNop()
	cache := NewMessageCache(new(MockHistoryFetcher))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.Append("u2", msgAt("m1", "u2", "u1", "hi", base))
	cache.Append("u3", msgAt("m2", "u3", "u1", "yo", base))

	cache.ClearAll()

	listA, loadedA := cache.Get("u2")
	listB, loadedB := cache.Get("u3")
	assert.Empty(t, listA)
	assert.Empty(t, listB)
	assert.False(t, loadedA)
	assert.False(t, loadedB)
}
