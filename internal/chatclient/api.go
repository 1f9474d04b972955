package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	errprocess "github.com/assafmilner/The-Stand-sub001/pkg/err"
)

// APIClient 聊天服務 REST 端點的客戶端，
// 實作 HistoryFetcher 與 RecentFetcher。
type APIClient struct {
	baseURL string
	tokens  TokenSource
	httpCli *http.Client
}

// NewAPIClient create APIClient，baseURL 例如 http://localhost:8083
func NewAPIClient(baseURL string, tokens TokenSource) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpCli: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchHistory 取得與 counterpartID 的完整歷史訊息（遞增排序）
func (a *APIClient) FetchHistory(ctx context.Context, counterpartID string) ([]domain.DirectMessage, error) {
	var result domain.HistoryResult
	if err := a.getJSON(ctx, "/messages/"+url.PathEscape(counterpartID), &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errprocess.Set("chat service history request failed")
	}
	return result.Messages, nil
}

// FetchRecent 取得最近對話列表（最新在前）
func (a *APIClient) FetchRecent(ctx context.Context) ([]domain.RecentConversation, error) {
	var result domain.RecentResult
	if err := a.getJSON(ctx, "/messages/recent", &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errprocess.Set("chat service recent request failed")
	}
	return result.Conversations, nil
}

func (a *APIClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}

	q := req.URL.Query()
	q.Set(middlewares.QueryToken, a.tokens.Token())
	req.URL.RawQuery = q.Encode()

	resp, err := a.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errprocess.Set(fmt.Sprintf("chat service returned status %d", resp.StatusCode))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FileTokenSource 從本機檔案讀取登入 token（登入流程寫入，登出刪除）
type FileTokenSource struct {
	path string

	mu     sync.Mutex
	cached string
	loaded bool
}

// NewFileTokenSource create FileTokenSource
func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path}
}

// Token 回傳保存的 token，檔案不存在時回傳空字串
func (f *FileTokenSource) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded {
		return f.cached
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	f.cached = strings.TrimSpace(string(data))
	f.loaded = true
	return f.cached
}

// Save 登入成功後寫入 token
func (f *FileTokenSource) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return err
	}
	f.cached = token
	f.loaded = true
	return nil
}

// Clear 登出時刪除 token 檔
func (f *FileTokenSource) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	os.Remove(f.path)
	f.cached = ""
	f.loaded = false
}

// StaticTokenSource 固定 token，測試與工具使用
type StaticTokenSource string

// Token 回傳固定 token
func (s StaticTokenSource) Token() string {
	return string(s)
}
