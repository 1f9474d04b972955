package app

import (
	"strconv"

	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// CommunityHandler definition community REST 入口
type CommunityHandler struct {
	Usecase *CommunityUseCase
}

// NewCommunityHandler create CommunityHandler
func NewCommunityHandler(usecase *CommunityUseCase) *CommunityHandler {
	return &CommunityHandler{Usecase: usecase}
}

func fanID(c *fiber.Ctx) string {
	if v, ok := c.Locals(middlewares.TokenUserID).(string); ok {
		return v
	}
	return ""
}

func postID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// CreatePost 創建貼文
// @Summary 創建貼文
// @Description 發布一篇新貼文到社群牆
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object true "authorName, teamTag, content, mediaUrl"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /posts [post]
func (h *CommunityHandler) CreatePost(c *fiber.Ctx) error {
	var req struct {
		AuthorName string `json:"authorName"`
		TeamTag    string `json:"teamTag"`
		Content    string `json:"content"`
		MediaURL   string `json:"mediaUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	post, err := h.Usecase.CreatePost(fanID(c), req.AuthorName, req.TeamTag, req.Content, req.MediaURL)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "post": post})
}

// GetPost 取得單篇貼文
// @Summary 取得單篇貼文
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (h *CommunityHandler) GetPost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}
	post, err := h.Usecase.GetPost(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "post": post})
}

// UpdatePost 編輯貼文
// @Summary 編輯貼文
// @Description 只有作者本人能編輯
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /posts/{id} [put]
func (h *CommunityHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	post, err := h.Usecase.UpdatePost(id, fanID(c), req.Content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "post": post})
}

// DeletePost 刪除貼文
// @Summary 刪除貼文
// @Description 只有作者本人能刪除
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /posts/{id} [delete]
func (h *CommunityHandler) DeletePost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}
	if err := h.Usecase.DeletePost(id, fanID(c)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListFeed 取得貼文牆
// @Summary 取得貼文牆
// @Description 時間倒序，可用 teamTag 過濾
// @Tags posts
// @Produce json
// @Param teamTag query string false "球隊標籤"
// @Param limit query int false "每頁筆數"
// @Param offset query int false "偏移量"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (h *CommunityHandler) ListFeed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", feedDefaultLimit)
	offset := c.QueryInt("offset", 0)
	posts, err := h.Usecase.ListFeed(c.Query("teamTag"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "posts": posts})
}

// SearchPosts 搜尋貼文
// @Summary 搜尋貼文
// @Tags posts
// @Produce json
// @Param q query string true "關鍵字"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /posts/search [get]
func (h *CommunityHandler) SearchPosts(c *fiber.Ctx) error {
	posts, err := h.Usecase.SearchPosts(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "posts": posts})
}

// AddComment 留言
// @Summary 留言
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /posts/{id}/comments [post]
func (h *CommunityHandler) AddComment(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}
	var req struct {
		AuthorName string `json:"authorName"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	comment, err := h.Usecase.AddComment(id, fanID(c), req.AuthorName, req.Content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "comment": comment})
}

// ListComments 取得留言
// @Summary 取得留言
// @Tags comments
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/comments [get]
func (h *CommunityHandler) ListComments(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}
	comments, err := h.Usecase.ListComments(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "comments": comments})
}

// ToggleLike 按讚/收回讚
// @Summary 按讚或收回讚
// @Tags likes
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /posts/{id}/like [post]
func (h *CommunityHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}
	liked, count, err := h.Usecase.ToggleLike(id, fanID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "liked": liked, "likeCount": count})
}
