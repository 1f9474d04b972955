package app

import (
	"github.com/assafmilner/The-Stand-sub001/internal/community/domain"

	"github.com/stretchr/testify/mock"
)

// MockPostRepo 模擬貼文儲存庫
type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPostRepo) Create(post *domain.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepo) GetByID(id uint) (*domain.Post, error) {
	args := m.Called(id)
	if post, ok := args.Get(0).(*domain.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepo) Update(post *domain.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepo) ListFeed(teamTag string, limit, offset int) ([]domain.Post, error) {
	args := m.Called(teamTag, limit, offset)
	if posts, ok := args.Get(0).([]domain.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepo) SearchPosts(keyword string) ([]domain.Post, error) {
	args := m.Called(keyword)
	if posts, ok := args.Get(0).([]domain.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepo) CreateComment(comment *domain.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockPostRepo) ListComments(postID uint) ([]domain.Comment, error) {
	args := m.Called(postID)
	if comments, ok := args.Get(0).([]domain.Comment); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepo) AddLike(postID uint, fanID string) error {
	args := m.Called(postID, fanID)
	return args.Error(0)
}

func (m *MockPostRepo) RemoveLike(postID uint, fanID string) error {
	args := m.Called(postID, fanID)
	return args.Error(0)
}

func (m *MockPostRepo) CountLikes(postID uint) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepo) HasLiked(postID uint, fanID string) (bool, error) {
	args := m.Called(postID, fanID)
	return args.Bool(0), args.Error(1)
}
