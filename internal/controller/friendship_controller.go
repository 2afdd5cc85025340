package controller

import (
	"post_place_backend/internal/service"
	"post_place_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FriendshipController struct {
	FriendshipService *service.FriendshipService
	Publisher         service.EventPublisher
}

func NewFriendshipController(friendshipService *service.FriendshipService, publisher service.EventPublisher) *FriendshipController {
	return &FriendshipController{
		FriendshipService: friendshipService,
		Publisher:         publisher,
	}
}

// SendRequestRequest 好友申请
type SendRequestRequest struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Message    string `json:"message" binding:"max=200"`
}

// SendRequest godoc
// @Summary 发送好友申请
// @Description 向指定用户发送好友申请，对方已向自己发送过申请时返回冲突
// @Tags 好友
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SendRequestRequest true "申请信息"
// @Success 201 {object} util.Response{data=model.FriendRequest} "申请已发送"
// @Failure 400 {object} util.Response "不能添加自己"
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 409 {object} util.Response "已是好友或申请已存在"
// @Router /api/friends/requests [post]
func (c *FriendshipController) SendRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	request, err := c.FriendshipService.SendRequest(claims.UserID, req.ReceiverID, req.Message)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("new_friend_request", request)
	util.Created(ctx, request)
}

// AcceptRequest godoc
// @Summary 接受好友申请
// @Description 接受来自指定用户的申请，双方建立好友关系
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Param   senderId path int true "申请人ID"
// @Success 200 {object} util.Response{data=model.User} "已成为好友"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friends/requests/{senderId}/accept [post]
func (c *FriendshipController) AcceptRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	senderID, err := parseUserID(ctx, "senderId")
	if err != nil {
		return
	}

	friend, err := c.FriendshipService.AcceptRequest(claims.UserID, senderID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("friend_request_accepted", gin.H{
		"senderId":   senderID,
		"receiverId": claims.UserID,
	})
	util.Success(ctx, friend)
}

// RejectRequest godoc
// @Summary 拒绝好友申请
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Param   senderId path int true "申请人ID"
// @Success 200 {object} util.Response "已拒绝"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friends/requests/{senderId}/reject [post]
func (c *FriendshipController) RejectRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	senderID, err := parseUserID(ctx, "senderId")
	if err != nil {
		return
	}

	if err := c.FriendshipService.RejectRequest(claims.UserID, senderID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "已拒绝该申请"})
}

// CancelRequest godoc
// @Summary 取消好友申请
// @Description 取消自己发出的待处理申请
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Param   receiverId path int true "接收人ID"
// @Success 200 {object} util.Response "已取消"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friends/requests/{receiverId} [delete]
func (c *FriendshipController) CancelRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	receiverID, err := parseUserID(ctx, "receiverId")
	if err != nil {
		return
	}

	if err := c.FriendshipService.CancelRequest(claims.UserID, receiverID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "已取消该申请"})
}

// RemoveFriend godoc
// @Summary 删除好友
// @Description 解除双方的好友关系
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Param   friendId path int true "好友ID"
// @Success 200 {object} util.Response "已删除"
// @Failure 400 {object} util.Response "你们还不是好友"
// @Router /api/friends/{friendId} [delete]
func (c *FriendshipController) RemoveFriend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friendID, err := parseUserID(ctx, "friendId")
	if err != nil {
		return
	}

	if err := c.FriendshipService.RemoveFriend(claims.UserID, friendID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("friendship_removed", gin.H{
		"userId":   claims.UserID,
		"friendId": friendID,
	})
	util.Success(ctx, gin.H{"message": "已删除好友"})
}

// GetFriends godoc
// @Summary 好友列表
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/friends [get]
func (c *FriendshipController) GetFriends(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friends, err := c.FriendshipService.GetFriends(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, friends)
}

// GetPendingRequests godoc
// @Summary 收到的好友申请
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.FriendRequest} "成功"
// @Router /api/friends/requests/pending [get]
func (c *FriendshipController) GetPendingRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	reqs, err := c.FriendshipService.GetPendingRequests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

// GetSentRequests godoc
// @Summary 发出的好友申请
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.FriendRequest} "成功"
// @Router /api/friends/requests/sent [get]
func (c *FriendshipController) GetSentRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	reqs, err := c.FriendshipService.GetSentRequests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

// GetStatus godoc
// @Summary 与指定用户的关系状态
// @Description 返回 friends、request_pending_sent、request_pending_received 或 unrelated
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Param   userId path int true "用户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/friends/status/{userId} [get]
func (c *FriendshipController) GetStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	otherID, err := parseUserID(ctx, "userId")
	if err != nil {
		return
	}

	status, err := c.FriendshipService.GetStatus(claims.UserID, otherID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"status": status})
}

// GetStats godoc
// @Summary 好友关系统计
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=repository.FriendshipStats} "成功"
// @Router /api/friends/stats [get]
func (c *FriendshipController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.FriendshipService.GetStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// SearchUsers godoc
// @Summary 搜索用户
// @Description 按名称或邮箱模糊搜索可添加为好友的用户
// @Tags 好友
// @Produce  json
// @Security BearerAuth
// @Param   q query string true "搜索词"
// @Param   limit query int false "返回数量上限，默认20"
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/friends/search [get]
func (c *FriendshipController) SearchUsers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	term := ctx.Query("q")
	if term == "" {
		util.BadRequest(ctx, "搜索词不能为空")
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, err := c.FriendshipService.SearchUsers(claims.UserID, term, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

func parseUserID(ctx *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return 0, err
	}
	return uint(id), nil
}
