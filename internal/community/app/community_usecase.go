package app

import (
	"fmt"
	"strings"

	"github.com/assafmilner/The-Stand-sub001/internal/community/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/community/repository"
	errprocess "github.com/assafmilner/The-Stand-sub001/pkg/err"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
)

const (
	feedDefaultLimit = 20
	feedMaxLimit     = 50
	postMaxLength    = 2000
)

// CommunityUseCase definition post/comment/like business logic
type CommunityUseCase struct {
	postRepo repository.PostRepo
}

// NewCommunityUseCase create CommunityUseCase
func NewCommunityUseCase(postRepo repository.PostRepo) *CommunityUseCase {
	return &CommunityUseCase{postRepo: postRepo}
}

// CreatePost 建立貼文，內容不可為空
func (u *CommunityUseCase) CreatePost(authorID, authorName, teamTag, content, mediaURL string) (*domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errprocess.Set("post content cannot be empty")
	}
	if len(content) > postMaxLength {
		return nil, errprocess.Set("post content too long")
	}

	post := &domain.Post{
		AuthorID:   authorID,
		AuthorName: authorName,
		TeamTag:    teamTag,
		Content:    content,
		MediaURL:   mediaURL,
	}
	if err := u.postRepo.Create(post); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("create post: %v", err))
	}
	logger.Log.Info(fmt.Sprintf("post created(id=%d, author=%s)", post.ID, authorID))
	return post, nil
}

// GetPost 取得單篇貼文並帶上讚數
func (u *CommunityUseCase) GetPost(id uint) (*domain.Post, error) {
	post, err := u.postRepo.GetByID(id)
	if err != nil {
		return nil, errprocess.Set("post not found")
	}
	count, err := u.postRepo.CountLikes(post.ID)
	if err == nil {
		post.LikeCount = count
	}
	return post, nil
}

// UpdatePost 只有作者本人能編輯
func (u *CommunityUseCase) UpdatePost(id uint, fanID, content string) (*domain.Post, error) {
	post, err := u.postRepo.GetByID(id)
	if err != nil {
		return nil, errprocess.Set("post not found")
	}
	if post.AuthorID != fanID {
		return nil, errprocess.Set("only the author can edit this post")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errprocess.Set("post content cannot be empty")
	}

	post.Content = content
	if err := u.postRepo.Update(post); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("update post: %v", err))
	}
	return post, nil
}

// DeletePost 只有作者本人能刪除
func (u *CommunityUseCase) DeletePost(id uint, fanID string) error {
	post, err := u.postRepo.GetByID(id)
	if err != nil {
		return errprocess.Set("post not found")
	}
	if post.AuthorID != fanID {
		return errprocess.Set("only the author can delete this post")
	}
	if err := u.postRepo.Delete(id); err != nil {
		return errprocess.Set(fmt.Sprintf("delete post: %v", err))
	}
	return nil
}

// ListFeed 時間倒序取得貼文牆，limit 超界會被夾回預設值
func (u *CommunityUseCase) ListFeed(teamTag string, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 || limit > feedMaxLimit {
		limit = feedDefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	posts, err := u.postRepo.ListFeed(teamTag, limit, offset)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("list feed: %v", err))
	}
	for i := range posts {
		if count, err := u.postRepo.CountLikes(posts[i].ID); err == nil {
			posts[i].LikeCount = count
		}
	}
	return posts, nil
}

// SearchPosts 依關鍵字模糊搜尋貼文
func (u *CommunityUseCase) SearchPosts(keyword string) ([]domain.Post, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errprocess.Set("search keyword cannot be empty")
	}
	posts, err := u.postRepo.SearchPosts(keyword)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("search posts: %v", err))
	}
	return posts, nil
}

// AddComment 在貼文底下留言
func (u *CommunityUseCase) AddComment(postID uint, authorID, authorName, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errprocess.Set("comment content cannot be empty")
	}
	if _, err := u.postRepo.GetByID(postID); err != nil {
		return nil, errprocess.Set("post not found")
	}
	comment := &domain.Comment{
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	}
	if err := u.postRepo.CreateComment(comment); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("create comment: %v", err))
	}
	return comment, nil
}

// ListComments 取得貼文底下全部留言
func (u *CommunityUseCase) ListComments(postID uint) ([]domain.Comment, error) {
	comments, err := u.postRepo.ListComments(postID)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("list comments: %v", err))
	}
	return comments, nil
}

// ToggleLike 按過讚就收回，沒按過就按讚，回傳最新讚數
func (u *CommunityUseCase) ToggleLike(postID uint, fanID string) (liked bool, count int64, err error) {
	if _, err := u.postRepo.GetByID(postID); err != nil {
		return false, 0, errprocess.Set("post not found")
	}
	has, err := u.postRepo.HasLiked(postID, fanID)
	if err != nil {
		return false, 0, errprocess.Set(fmt.Sprintf("check like: %v", err))
	}
	if has {
		if err := u.postRepo.RemoveLike(postID, fanID); err != nil {
			return false, 0, errprocess.Set(fmt.Sprintf("remove like: %v", err))
		}
		liked = false
	} else {
		if err := u.postRepo.AddLike(postID, fanID); err != nil {
			return false, 0, errprocess.Set(fmt.Sprintf("add like: %v", err))
		}
		liked = true
	}
	count, err = u.postRepo.CountLikes(postID)
	if err != nil {
		return liked, 0, errprocess.Set(fmt.Sprintf("count likes: %v", err))
	}
	return liked, count, nil
}
