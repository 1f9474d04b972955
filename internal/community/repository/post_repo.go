package repository

import (
	"errors"

	"github.com/assafmilner/The-Stand-sub001/internal/community/domain"

	"gorm.io/gorm"
)

// PostRepo definition community post persistence
type PostRepo interface {
	AutoMigrate() error
	Create(post *domain.Post) error
	GetByID(id uint) (*domain.Post, error)
	Update(post *domain.Post) error
	Delete(id uint) error
	ListFeed(teamTag string, limit, offset int) ([]domain.Post, error)
	SearchPosts(keyword string) ([]domain.Post, error)

	CreateComment(comment *domain.Comment) error
	ListComments(postID uint) ([]domain.Comment, error)

	AddLike(postID uint, fanID string) error
	RemoveLike(postID uint, fanID string) error
	CountLikes(postID uint) (int64, error)
	HasLiked(postID uint, fanID string) (bool, error)
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepo create PostRepo
func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepo{db: db}
}

// AutoMigrate 開發階段讓表結構跟著 model 走
func (r *postRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Post{}, &domain.Comment{}, &domain.Like{})
}

func (r *postRepo) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepo) GetByID(id uint) (*domain.Post, error) {
	var p domain.Post
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) Update(post *domain.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepo) Delete(id uint) error {
	return r.db.Delete(&domain.Post{}, id).Error
}

// ListFeed 最新在前，teamTag 空字串表示全部
func (r *postRepo) ListFeed(teamTag string, limit, offset int) ([]domain.Post, error) {
	var posts []domain.Post
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if teamTag != "" {
		q = q.Where("team_tag = ?", teamTag)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts 利用 PostgreSQL 的 ILIKE 實作模糊搜尋
func (r *postRepo) SearchPosts(keyword string) ([]domain.Post, error) {
	var posts []domain.Post
	like := "%" + keyword + "%"
	if err := r.db.Where("content ILIKE ?", like).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) CreateComment(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *postRepo) ListComments(postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *postRepo) AddLike(postID uint, fanID string) error {
	return r.db.Create(&domain.Like{PostID: postID, FanID: fanID}).Error
}

func (r *postRepo) RemoveLike(postID uint, fanID string) error {
	return r.db.Where("post_id = ? AND fan_id = ?", postID, fanID).Delete(&domain.Like{}).Error
}

func (r *postRepo) CountLikes(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepo) HasLiked(postID uint, fanID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).Where("post_id = ? AND fan_id = ?", postID, fanID).Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}
