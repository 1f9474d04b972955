package domain

import (
	"time"

	"github.com/assafmilner/The-Stand-sub001/pkg/encrypt"
)

// Fan 球迷會員
type Fan struct {
	ID           int64
	FanID        string
	Username     string
	Email        string
	Password     string
	FavoriteTeam string
	Location     string
	Bio          string
	AvatarURL    string
	CreatedAt    time.Time
}

// FanSession 會員登入後保存在 redis 的 session
type FanSession struct {
	Token        string    `json:"Token"`
	FanID        string    `json:"FanID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch 密碼驗證
func (f *Fan) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(f.Password, inputPwd)
}

// IsExpired 檢查 Session 是否已過期
func (s *FanSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// FanQuery join conditions are used to query fans
type FanQuery struct {
	ID    *int64  `db:"id"`
	FanID *string `db:"fan_id"`
	Email *string `db:"email"`
}

// ProfileUpdate 可修改的個人資料欄位，nil 表示不更動
type ProfileUpdate struct {
	Username     *string
	FavoriteTeam *string
	Location     *string
	Bio          *string
}
