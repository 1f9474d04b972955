package chatclient

import (
	"context"
	"sort"
	"sync"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
)

// HistoryFetcher 歷史訊息來源（REST）
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, counterpartID string) ([]domain.DirectMessage, error)
}

// CacheListener 單一對話視圖更新的 callback，收到的是排好序的完整列表
type CacheListener func(messages []domain.DirectMessage)

// MessageCache 以對話對象 ID 為 key 的訊息快取。
// 同一個對話的所有視圖共用一份列表，append 與 load 都會廣播給訂閱者。
type MessageCache struct {
	fetcher HistoryFetcher

	mu        sync.Mutex
	entries   map[string][]domain.DirectMessage
	loaded    map[string]bool
	seq       map[string]uint64
	nextSubID int
	subs      map[string]map[int]CacheListener
}

// NewMessageCache create MessageCache
func NewMessageCache(fetcher HistoryFetcher) *MessageCache {
	return &MessageCache{
		fetcher: fetcher,
		entries: make(map[string][]domain.DirectMessage),
		loaded:  make(map[string]bool),
		seq:     make(map[string]uint64),
		subs:    make(map[string]map[int]CacheListener),
	}
}

// Get 回傳快取內容副本；第二個回傳值表示這個對話是否已從伺服器載入過
func (c *MessageCache) Get(counterpartID string) ([]domain.DirectMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyMessages(c.entries[counterpartID]), c.loaded[counterpartID]
}

// LoadHistory cache-first 載入歷史訊息。
// 已載入且未強制更新時直接回快取（fromCache=true），否則打 fetcher 並整份覆蓋。
// 連續切換對話時舊的 fetch 以序號判定過期，回應直接丟棄。
func (c *MessageCache) LoadHistory(ctx context.Context, counterpartID string, forceRefresh bool) ([]domain.DirectMessage, bool) {
	c.mu.Lock()
	if c.loaded[counterpartID] && !forceRefresh {
		msgs := copyMessages(c.entries[counterpartID])
		c.mu.Unlock()
		return msgs, true
	}
	c.seq[counterpartID]++
	mySeq := c.seq[counterpartID]
	c.mu.Unlock()

	fetched, err := c.fetcher.FetchHistory(ctx, counterpartID)

	c.mu.Lock()
	// 有更新的請求在跑，這一筆結果已過期
	if c.seq[counterpartID] != mySeq {
		msgs := copyMessages(c.entries[counterpartID])
		c.mu.Unlock()
		return msgs, false
	}

	if err != nil {
		logger.Log.Errorf("chatclient history fetch error:", err)
		msgs := copyMessages(c.entries[counterpartID])
		c.mu.Unlock()
		return msgs, false
	}

	sorted := append([]domain.DirectMessage(nil), fetched...)
	sortMessages(sorted)
	c.entries[counterpartID] = sorted
	c.loaded[counterpartID] = true
	listeners := c.snapshotSubs(counterpartID)
	msgs := copyMessages(sorted)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(copyMessages(sorted))
	}
	return msgs, false
}

// Append 加入單筆訊息：同 ID 重覆直接忽略，插入後依 CreatedAt 穩定排序。
// 回傳更新後的完整列表並通知訂閱者。
func (c *MessageCache) Append(counterpartID string, msg domain.DirectMessage) []domain.DirectMessage {
	c.mu.Lock()
	list := c.entries[counterpartID]
	for _, m := range list {
		if m.ID == msg.ID {
			out := copyMessages(list)
			c.mu.Unlock()
			return out
		}
	}
	list = append(list, msg)
	sortMessages(list)
	c.entries[counterpartID] = list
	listeners := c.snapshotSubs(counterpartID)
	out := copyMessages(list)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(copyMessages(list))
	}
	return out
}

// Subscribe 訂閱單一對話的更新，回傳的函式用來取消訂閱
func (c *MessageCache) Subscribe(counterpartID string, fn CacheListener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubID++
	id := c.nextSubID
	if c.subs[counterpartID] == nil {
		c.subs[counterpartID] = make(map[int]CacheListener)
	}
	c.subs[counterpartID][id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[counterpartID], id)
	}
}

// Clear 移除單一對話的快取（下次開啟會重新載入）
func (c *MessageCache) Clear(counterpartID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, counterpartID)
	delete(c.loaded, counterpartID)
}

// ClearAll 登出時清空全部快取
func (c *MessageCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]domain.DirectMessage)
	c.loaded = make(map[string]bool)
}

func (c *MessageCache) snapshotSubs(counterpartID string) []CacheListener {
	out := make([]CacheListener, 0, len(c.subs[counterpartID]))
	for _, fn := range c.subs[counterpartID] {
		out = append(out, fn)
	}
	return out
}

// sortMessages 依 CreatedAt 遞增穩定排序，同時間戳保持原插入順序
func sortMessages(list []domain.DirectMessage) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}

func copyMessages(list []domain.DirectMessage) []domain.DirectMessage {
	out := make([]domain.DirectMessage, len(list))
	copy(out, list)
	return out
}
