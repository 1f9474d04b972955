package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/encrypt"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	token "github.com/assafmilner/The-Stand-sub001/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMemberUseCase_Register(t *testing.T) {
	ctx := context.Background()
	email := "fan@example.com"
	password := "Securepassword111"

	logger.SetNewNop()

	// **情境 1: 註冊成功**
	t.Run("成功註冊", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).Return(nil, errors.New("not found")).Once()
		mockRepo.On("CreateFan", ctx, mock.Anything).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.Register(ctx, "assaf", email, password, "Hapoel Tel Aviv")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2: Email 已存在**
	t.Run("Email 已存在", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		existingFan := &domain.Fan{
			ID:    1,
			FanID: "AAA",
			Email: email,
		}

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).
			Return(existingFan, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.Register(ctx, "assaf", email, password, "Hapoel Tel Aviv")

		assert.Error(t, err)
		assert.Equal(t, "email already exists", err.Error())
		mockRepo.AssertExpectations(t)
	})

	// **情境 3: 密碼強度不足**
	t.Run("密碼強度不足", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).Return(nil, errors.New("not found")).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.Register(ctx, "assaf", email, "weak", "Hapoel Tel Aviv")

		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})

	// **情境 4: 建立用戶失敗**
	t.Run("建立用戶失敗", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).Return(nil, errors.New("not found")).Once()
		mockRepo.On("CreateFan", ctx, mock.Anything).Return(errors.New("db error")).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.Register(ctx, "assaf", email, password, "Hapoel Tel Aviv")

		assert.Error(t, err)
		assert.Equal(t, "db error", err.Error())
		mockRepo.AssertExpectations(t)
	})

	// **情境 5: username 為空**
	t.Run("username 為空", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.Register(ctx, "", email, password, "")

		assert.Error(t, err)
	})
}

func TestMemberUseCase_Login(t *testing.T) {
	ctx := context.Background()
	email := "fan@example.com"
	password := "Securepassword111"
	hashedPassword, _ := encrypt.HashPassword(password)

	logger.SetNewNop()

	// **情境 1: 成功登入**
	t.Run("成功登入", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		existingFan := &domain.Fan{
			FanID:    "AAA",
			Email:    email,
			Password: hashedPassword,
		}

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).
			Return(existingFan, nil).Once()

		mockRedis.On("Set", mock.Anything, existingFan.FanID, mock.Anything, time.Hour).
			Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		tok, err := uc.Login(ctx, email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, tok)
		mockRepo.AssertExpectations(t)
		mockRedis.AssertExpectations(t)
	})

	// **情境 2: 使用者不存在**
	t.Run("使用者不存在", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).
			Return(nil, errors.New("no fan found with given criteria")).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		tok, err := uc.Login(ctx, email, password)

		assert.Error(t, err)
		assert.Equal(t, "user not found", err.Error())
		assert.Empty(t, tok)
		mockRepo.AssertExpectations(t)
	})

	// **情境 3: 密碼錯誤**
	t.Run("密碼錯誤", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		existingFan := &domain.Fan{
			FanID:    "AAA",
			Email:    email,
			Password: hashedPassword,
		}

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).
			Return(existingFan, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		tok, err := uc.Login(ctx, email, "wrong_password")

		assert.Error(t, err)
		assert.Empty(t, tok)
		mockRepo.AssertExpectations(t)
	})

	// **情境 4: JWT 生成失敗**
	t.Run("JWT 生成失敗", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		existingFan := &domain.Fan{
			FanID:    "AAA",
			Email:    email,
			Password: hashedPassword,
		}

		mockRepo.On("FindByFan", ctx, &domain.FanQuery{Email: &email}).
			Return(existingFan, nil).Once()

		// 備份原始的 GenerateJWTFunc，測試結束後恢復
		originalGenerateJWT := token.GenerateJWTFunc
		defer func() { token.GenerateJWTFunc = originalGenerateJWT }()

		token.GenerateJWTFunc = func(userID, role, issuer string) (string, error) {
			return "", errors.New("can't GenerateJWT!!!")
		}

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		tok, err := uc.Login(ctx, email, password)

		assert.Error(t, err)
		assert.Empty(t, tok)
		mockRepo.AssertExpectations(t)
	})
}

func TestMemberUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	tokenStr := "mockToken"
	fanID := "AAA"

	logger.SetNewNop()

	// **情境 1: 解析 Token 失敗**
	t.Run("解析 Token 失敗", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		originalParseJWTFunc := token.ParseJWTFunc
		defer func() { token.ParseJWTFunc = originalParseJWTFunc }()

		token.ParseJWTFunc = func(t string) (*token.Claims, error) {
			return nil, errors.New("invalid token")
		}

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.Logout(ctx, tokenStr)

		assert.Error(t, err)
		assert.Equal(t, "invalid token", err.Error())
	})

	// **情境 2: 成功登出**
	t.Run("成功登出", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		originalParseJWTFunc := token.ParseJWTFunc
		defer func() { token.ParseJWTFunc = originalParseJWTFunc }()

		token.ParseJWTFunc = func(t string) (*token.Claims, error) {
			return &token.Claims{UserID: fanID}, nil
		}

		mockRedis.On("Del", mock.Anything, fanID).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.Logout(ctx, tokenStr)

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
	})
}

func TestMemberUseCase_CheckSessionTimeout(t *testing.T) {
	ctx := context.Background()
	tokenStr := "mockToken"
	fanID := "AAA"

	logger.SetNewNop()

	originalParseJWTFunc := token.ParseJWTFunc
	defer func() { token.ParseJWTFunc = originalParseJWTFunc }()

	token.ParseJWTFunc = func(t string) (*token.Claims, error) {
		return &token.Claims{UserID: fanID}, nil
	}

	// **情境 1: Session 尚未過期**
	t.Run("Session 尚未過期", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("GetTTL", mock.Anything, fanID).Return(60, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		timedOut, err := uc.CheckSessionTimeout(ctx, tokenStr)

		assert.NoError(t, err)
		assert.False(t, timedOut)
		mockRedis.AssertExpectations(t)
	})

	// **情境 2: Session 已過期**
	t.Run("Session 已過期", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("GetTTL", mock.Anything, fanID).Return(0, nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		timedOut, err := uc.CheckSessionTimeout(ctx, tokenStr)

		assert.NoError(t, err)
		assert.True(t, timedOut)
		mockRedis.AssertExpectations(t)
	})
}

func TestMemberUseCase_ReconnectSession(t *testing.T) {
	ctx := context.Background()
	tokenStr := "mockToken"
	fanID := "AAA"

	logger.SetNewNop()

	originalParseJWTFunc := token.ParseJWTFunc
	defer func() { token.ParseJWTFunc = originalParseJWTFunc }()

	token.ParseJWTFunc = func(t string) (*token.Claims, error) {
		return &token.Claims{UserID: fanID}, nil
	}

	t.Run("成功延長 Session", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("ExtendTTL", mock.Anything, fanID, time.Hour).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.ReconnectSession(ctx, tokenStr)

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
	})
}

func TestMemberUseCase_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	fanID := "AAA"

	logger.SetNewNop()

	t.Run("成功更新", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		team := "Maccabi Haifa"
		update := &domain.ProfileUpdate{FavoriteTeam: &team}
		mockRepo.On("UpdateProfile", ctx, fanID, update).Return(nil).Once()

		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.UpdateProfile(ctx, fanID, update)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	// 不允許把 username 改成空字串
	t.Run("username 不可為空", func(t *testing.T) {
		mockRepo := new(MockFanRepo)
		mockRedis := new(MockRedisRepo)

		empty := ""
		uc := NewMemberUseCase(mockRepo, time.Hour, mockRedis, nil)
		err := uc.UpdateProfile(ctx, fanID, &domain.ProfileUpdate{Username: &empty})

		assert.Error(t, err)
	})
}
