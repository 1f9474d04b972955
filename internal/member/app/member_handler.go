package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemberHandler 处理会员相关的 HTTP 请求
type MemberHandler struct {
	Usecase       MemberUseCase
	FriendUsecase FriendUseCase
	TicketUsecase TicketUseCase
}

// NewMemberHandler 创建新的 MemberHandler
func NewMemberHandler(usecase MemberUseCase, friendUsecase FriendUseCase, ticketUsecase TicketUseCase) *MemberHandler {
	return &MemberHandler{
		Usecase:       usecase,
		FriendUsecase: friendUsecase,
		TicketUsecase: ticketUsecase,
	}
}

func fanID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok || id == "" {
		return "", fmt.Errorf("c.Locals(%s) is nil", middlewares.TokenUserID)
	}
	return id, nil
}

// Register 注册新球迷
// @Summary 注册新球迷
// @Description 处理球迷注册请求
// @Tags Fans
// @Accept json
// @Produce json
// @Param request body object true "注册请求"
// @Success 200 {object} string "注册成功"
// @Failure 400 {object} string "请求错误"
// @Failure 500 {object} string "服务器错误"
// @Router /fans/register [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	type request struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		FavoriteTeam string `json:"favoriteTeam"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Register request", zap.String("email", req.Email), zap.String("username", req.Username))

	if err := h.Usecase.Register(context.Background(), req.Username, req.Email, req.Password, req.FavoriteTeam); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "register success"})
}

// Login 球迷登录
// @Summary 球迷登录
// @Description 通过邮箱和密码登录
// @Tags Fans
// @Accept json
// @Produce json
// @Param request body object true "登录信息"
// @Success 200 {object} string "登录成功"
// @Failure 401 {object} string "登录失败"
// @Router /fans/login [post]
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login", zap.String("Email", req.Email))

	token, err := h.Usecase.Login(context.Background(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"token": token, "message": "login success"})
}

// Logout 球迷登出
// @Summary 球迷登出
// @Description 注销会话
// @Tags Fans
// @Produce json
// @Success 200 {object} string "注销成功"
// @Failure 500 {object} string "服务器错误"
// @Router /fans/logout [post]
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	token := middlewares.ExtractToken(c)
	if token == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "token is missing"})
	}

	if err := h.Usecase.Logout(context.Background(), token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "logout success"})
}

// Me 取得自己的个人资料
// @Summary 取得个人资料
// @Tags Fans
// @Produce json
// @Success 200 {object} string "个人资料"
// @Failure 404 {object} string "未找到用户"
// @Router /fans/me [get]
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	fan, err := h.Usecase.FindFan(context.Background(), &domain.FanQuery{FanID: &id})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"fanId":        fan.FanID,
		"username":     fan.Username,
		"email":        fan.Email,
		"favoriteTeam": fan.FavoriteTeam,
		"location":     fan.Location,
		"bio":          fan.Bio,
		"avatarUrl":    fan.AvatarURL,
	})
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Tags Fans
// @Accept json
// @Produce json
// @Param request body object true "可修改栏位"
// @Success 200 {object} string "更新成功"
// @Failure 500 {object} string "服务器错误"
// @Router /fans/me [put]
func (h *MemberHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var update domain.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.UpdateProfile(context.Background(), id, &update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "profile updated"})
}

// UploadAvatar 上传头像
// @Summary 上传头像
// @Description 上传头像文件到对象存储
// @Tags Fans
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "头像文件"
// @Success 200 {object} string "上传成功"
// @Failure 400 {object} string "未检测到文件"
// @Router /fans/me/avatar [post]
func (h *MemberHandler) UploadAvatar(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "未檢測到檔案"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "開啟檔案失敗"})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.Usecase.UploadAvatar(context.Background(), id, file, fileHeader.Size, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "avatar uploaded", "avatarUrl": url})
}

// ResolveFan 内部端点：聊天服务用 fan_id 解析会员基本资料
// @Summary 解析会员基本资料
// @Tags Internal
// @Produce json
// @Param id path string true "fan_id"
// @Success 200 {object} string "会员基本资料"
// @Failure 404 {object} string "未找到用户"
// @Router /internal/fans/{id} [get]
func (h *MemberHandler) ResolveFan(c *fiber.Ctx) error {
	id := c.Params("id")

	fan, err := h.Usecase.FindFan(context.Background(), &domain.FanQuery{FanID: &id})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"fan": fiber.Map{
			"id":        fan.FanID,
			"username":  fan.Username,
			"avatarUrl": fan.AvatarURL,
		},
	})
}

// SendFriendRequest 送出交友邀请
// @Summary 送出交友邀请
// @Tags Friends
// @Accept json
// @Produce json
// @Param request body object true "收件人"
// @Success 200 {object} string "邀请已送出"
// @Failure 400 {object} string "请求错误"
// @Router /friends/requests [post]
func (h *MemberHandler) SendFriendRequest(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type request struct {
		ReceiverID string `json:"receiverId"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	fr, err := h.FriendUsecase.SendRequest(context.Background(), id, req.ReceiverID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "friend request sent", "requestId": fr.ID})
}

// RespondFriendRequest 回复交友邀请 (accept / reject)
// @Summary 回复交友邀请
// @Tags Friends
// @Accept json
// @Produce json
// @Param id path int true "邀请 ID"
// @Param request body object true "accept 或 reject"
// @Success 200 {object} string "已回复"
// @Failure 400 {object} string "请求错误"
// @Router /friends/requests/{id} [put]
func (h *MemberHandler) RespondFriendRequest(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	requestID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request id"})
	}

	type request struct {
		Action string `json:"action"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	switch req.Action {
	case "accept":
		err = h.FriendUsecase.Accept(context.Background(), id, requestID)
	case "reject":
		err = h.FriendUsecase.Reject(context.Background(), id, requestID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action must be accept or reject"})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": req.Action + " success"})
}

// ListFriendRequests 列出等待回复的邀请
// @Summary 列出等待回复的邀请
// @Tags Friends
// @Produce json
// @Success 200 {object} string "邀请列表"
// @Router /friends/requests [get]
func (h *MemberHandler) ListFriendRequests(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := h.FriendUsecase.ListPending(context.Background(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"requests": list})
}

// ListFriends 列出好友
// @Summary 列出好友
// @Tags Friends
// @Produce json
// @Success 200 {object} string "好友列表"
// @Router /friends [get]
func (h *MemberHandler) ListFriends(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := h.FriendUsecase.ListFriends(context.Background(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"friends": list})
}

// ListTickets 列出可购买的门票
// @Summary 列出可购买的门票
// @Tags Tickets
// @Produce json
// @Success 200 {object} string "门票列表"
// @Router /tickets [get]
func (h *MemberHandler) ListTickets(c *fiber.Ctx) error {
	list, err := h.TicketUsecase.List(context.Background())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"tickets": list})
}

// CreateTicket 上架门票
// @Summary 上架门票
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body object true "门票信息"
// @Success 200 {object} string "上架成功"
// @Failure 400 {object} string "请求错误"
// @Router /tickets [post]
func (h *MemberHandler) CreateTicket(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var ticket domain.Ticket
	if err := c.BodyParser(&ticket); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	ticket.SellerID = id

	if err := h.TicketUsecase.Create(context.Background(), &ticket); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "ticket listed", "ticketId": ticket.ID})
}

// PurchaseTicket 购买门票
// @Summary 购买门票
// @Tags Tickets
// @Produce json
// @Param id path int true "门票 ID"
// @Success 200 {object} string "购买成功"
// @Failure 400 {object} string "请求错误"
// @Router /tickets/{id}/purchase [post]
func (h *MemberHandler) PurchaseTicket(c *fiber.Ctx) error {
	id, err := fanID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ticketID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid ticket id"})
	}

	if err := h.TicketUsecase.Purchase(context.Background(), id, ticketID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "purchase success"})
}
