package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/member/repository"
	"github.com/assafmilner/The-Stand-sub001/pkg/config"
	"github.com/assafmilner/The-Stand-sub001/pkg/database"
	"github.com/assafmilner/The-Stand-sub001/pkg/encrypt"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	token "github.com/assafmilner/The-Stand-sub001/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// avatarURLExpiry presigned URL 有效時間
const avatarURLExpiry = 7 * 24 * time.Hour

// MemberUseCase 這裡封裝了對外提供的應用服務
type MemberUseCase interface {
	Register(ctx context.Context, username, email, password, favoriteTeam string) error
	FindFan(ctx context.Context, param *domain.FanQuery) (*domain.Fan, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	ForceLogout(ctx context.Context, fanID string) error
	CheckSessionTimeout(ctx context.Context, token string) (bool, error)
	ReconnectSession(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, fanID string, update *domain.ProfileUpdate) error
	UploadAvatar(ctx context.Context, fanID string, reader io.Reader, size int64, contentType string) (string, error)
}

type memberUseCase struct {
	fanRepo    repository.FanRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.FanSession]
	minio      *database.MinIOClient
}

// NewMemberUseCase 建立一個新的 MemberUseCase
func NewMemberUseCase(fanRepo repository.FanRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.FanSession],
	minio *database.MinIOClient,
) MemberUseCase {
	return &memberUseCase{
		fanRepo:    fanRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
		minio:      minio,
	}
}

// Register
func (m *memberUseCase) Register(ctx context.Context, username, email, password, favoriteTeam string) error {
	if username == "" || email == "" {
		return errors.New("username and email are required")
	}

	// 檢查 email 是否已存在
	if _, err := m.fanRepo.FindByFan(ctx, &domain.FanQuery{Email: &email}); err == nil {
		return errors.New("email already exists")
	}

	if err := encrypt.ValidatePasswordStrength(password); err != nil {
		return err
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		logger.Log.Errorf("password err :", err)
		return err
	}

	fan := domain.Fan{
		FanID:        uuid.New().String(),
		Username:     username,
		Email:        email,
		Password:     pw,
		FavoriteTeam: favoriteTeam,
	}

	logger.Log.Info(fmt.Sprintf("usecase Register : %s (%s)", fan.Username, fan.Email))

	return m.fanRepo.CreateFan(ctx, &fan)
}

// FindFan 用查詢條件尋找會員
func (m *memberUseCase) FindFan(ctx context.Context, param *domain.FanQuery) (*domain.Fan, error) {
	return m.fanRepo.FindByFan(ctx, param)
}

// Login
func (m *memberUseCase) Login(ctx context.Context, email, password string) (string, error) {
	fan, err := m.fanRepo.FindByFan(ctx, &domain.FanQuery{Email: &email})
	if err != nil {
		logger.Log.Error("email can't find!!!")
		return "", errors.New("user not found")
	}

	if err = fan.IsPasswordMatch(password); err != nil {
		logger.Log.Error("password can't match!!!")
		return "", err
	}

	t, err := token.GenerateJWTFunc(fan.FanID, string(token.RoleFan), config.EnvConfig.MemberService)
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := domain.FanSession{
		Token:        t,
		FanID:        fan.FanID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(m.sessionTTL),
	}

	m.redisRepo.Set(context.Background(), fan.FanID, session, m.sessionTTL)

	return t, nil
}

// Logout
func (m *memberUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWTFunc(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("logout", zap.String("fan token info", fmt.Sprintf("%v", tokenInfo)))

	return m.redisRepo.Del(context.Background(), tokenInfo.UserID)
}

// ForceLogout 直接把該會員的 session 清除
func (m *memberUseCase) ForceLogout(ctx context.Context, fanID string) error {
	return m.redisRepo.Del(context.Background(), fanID)
}

// CheckSessionTimeout
func (m *memberUseCase) CheckSessionTimeout(ctx context.Context, t string) (bool, error) {
	tokenInfo, err := token.ParseJWTFunc(t)
	if err != nil {
		logger.Log.Error("CheckSessionTimeout err :", zap.String("err", err.Error()))
		return true, err
	}

	ttl, err := m.redisRepo.GetTTL(context.Background(), tokenInfo.UserID)
	if err != nil {
		return true, err
	}

	if ttl > 0 {
		return false, nil
	}
	return true, nil
}

// ReconnectSession 使用者重新連線時延長 session
func (m *memberUseCase) ReconnectSession(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWTFunc(t)
	if err != nil {
		logger.Log.Error("ReconnectSession err :", zap.String("err", err.Error()))
		return err
	}

	return m.redisRepo.ExtendTTL(context.Background(), tokenInfo.UserID, m.sessionTTL)
}

// UpdateProfile 更新個人資料
func (m *memberUseCase) UpdateProfile(ctx context.Context, fanID string, update *domain.ProfileUpdate) error {
	if update.Username != nil && *update.Username == "" {
		return errors.New("username can't be empty")
	}
	return m.fanRepo.UpdateProfile(ctx, fanID, update)
}

// UploadAvatar 上傳頭像到 MinIO 並更新會員的 avatar_url
func (m *memberUseCase) UploadAvatar(ctx context.Context, fanID string, reader io.Reader, size int64, contentType string) (string, error) {
	if m.minio == nil {
		return "", errors.New("avatar storage is not configured")
	}

	objectName := fmt.Sprintf("avatars/%s", fanID)
	if err := m.minio.UploadStream(ctx, objectName, reader, size, contentType); err != nil {
		logger.Log.Errorf("avatar upload err :", err)
		return "", err
	}

	url, err := m.minio.PresignGetURL(ctx, objectName, avatarURLExpiry)
	if err != nil {
		return "", err
	}

	if err := m.fanRepo.UpdateAvatar(ctx, fanID, url); err != nil {
		return "", err
	}
	return url, nil
}
