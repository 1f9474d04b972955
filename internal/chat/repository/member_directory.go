package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
)

// UserDirectory 解析使用者 ID 成 UserRef（訊息上要帶名字跟頭像）
type UserDirectory interface {
	Resolve(ctx context.Context, userID string) (domain.UserRef, error)
}

type memberDirectory struct {
	baseURL string
	client  *http.Client
}

// NewMemberDirectory create a UserDirectory backed by member_service REST API
func NewMemberDirectory(baseURL string) UserDirectory {
	return &memberDirectory{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (d *memberDirectory) Resolve(ctx context.Context, userID string) (domain.UserRef, error) {
	url := fmt.Sprintf("%s/internal/fans/%s", d.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.UserRef{}, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return domain.UserRef{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.UserRef{}, fmt.Errorf("member_service resolve [%s] status %d", userID, resp.StatusCode)
	}

	var body struct {
		Success bool           `json:"success"`
		Fan     domain.UserRef `json:"fan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.UserRef{}, err
	}
	if !body.Success {
		return domain.UserRef{}, fmt.Errorf("member_service can't resolve user [%s]", userID)
	}

	return body.Fan, nil
}
