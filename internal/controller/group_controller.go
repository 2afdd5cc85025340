package controller

import (
	"post_place_backend/internal/service"
	"post_place_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	GroupService *service.GroupService
	Publisher    service.EventPublisher
}

func NewGroupController(groupService *service.GroupService, publisher service.EventPublisher) *GroupController {
	return &GroupController{
		GroupService: groupService,
		Publisher:    publisher,
	}
}

// CreateGroupRequest 建群请求
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	IsPrivate   bool   `json:"isPrivate"`
}

// AddMemberRequest 添加成员请求
type AddMemberRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// CreateGroup godoc
// @Summary 创建群组
// @Description 创建群组，创建者自动成为管理员
// @Tags 群组
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateGroupRequest true "群组信息"
// @Success 201 {object} util.Response{data=model.Group} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group, err := c.GroupService.CreateGroup(claims.UserID, req.Name, req.Description, req.IsPrivate)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("new_group", group)
	util.Created(ctx, group)
}

// ListGroups godoc
// @Summary 我的群组
// @Description 当前用户所在的群组，带成员数量和自己的角色
// @Tags 群组
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]repository.GroupSummary} "成功"
// @Router /api/groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groups, err := c.GroupService.GetUserGroups(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// GetGroup godoc
// @Summary 群组详情
// @Tags 群组
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "群组ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "群组不存在"
// @Router /api/groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	group, myRole, err := c.GroupService.GetGroup(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"group": group, "myRole": myRole})
}

// AddMember godoc
// @Summary 添加群组成员
// @Description 管理员把自己的好友拉进群
// @Tags 群组
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "群组ID"
// @Param   body body AddMemberRequest true "新成员"
// @Success 200 {object} util.Response{data=model.User} "添加成功"
// @Failure 400 {object} util.Response "只能添加好友"
// @Failure 403 {object} util.Response "没有管理员权限"
// @Failure 409 {object} util.Response "已是成员"
// @Router /api/groups/{id}/members [post]
func (c *GroupController) AddMember(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	groupID := ctx.Param("id")
	member, err := c.GroupService.AddMember(groupID, claims.UserID, req.UserID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("group_member_added", gin.H{"groupId": groupID, "member": member})
	util.Success(ctx, member)
}

// RemoveMember godoc
// @Summary 移除群组成员
// @Description 管理员移除成员，创建者不可被移除
// @Tags 群组
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "群组ID"
// @Param   userId path int true "成员ID"
// @Success 200 {object} util.Response "移除成功"
// @Failure 403 {object} util.Response "没有权限或目标是创建者"
// @Failure 404 {object} util.Response "群组不存在"
// @Router /api/groups/{id}/members/{userId} [delete]
func (c *GroupController) RemoveMember(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	memberID, err := parseUserID(ctx, "userId")
	if err != nil {
		return
	}

	groupID := ctx.Param("id")
	if err := c.GroupService.RemoveMember(groupID, claims.UserID, memberID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("group_member_removed", gin.H{"groupId": groupID, "userId": memberID})
	util.Success(ctx, gin.H{"message": "成员已移除"})
}

// LeaveGroup godoc
// @Summary 退出群组
// @Description 创建者不能退出，只能删除群组
// @Tags 群组
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "群组ID"
// @Success 200 {object} util.Response "退出成功"
// @Failure 403 {object} util.Response "创建者不能退出"
// @Failure 404 {object} util.Response "群组不存在"
// @Router /api/groups/{id}/leave [post]
func (c *GroupController) LeaveGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID := ctx.Param("id")
	if err := c.GroupService.LeaveGroup(groupID, claims.UserID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("group_member_left", gin.H{"groupId": groupID, "userId": claims.UserID})
	util.Success(ctx, gin.H{"message": "已退出群组"})
}

// DeleteGroup godoc
// @Summary 删除群组
// @Description 仅创建者可删除，成员关系一并清除
// @Tags 群组
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "群组ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 403 {object} util.Response "只有创建者可以删除"
// @Failure 404 {object} util.Response "群组不存在"
// @Router /api/groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID := ctx.Param("id")
	if err := c.GroupService.DeleteGroup(groupID, claims.UserID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("group_deleted", gin.H{"id": groupID})
	util.Success(ctx, gin.H{"message": "群组已删除"})
}

// GetAvailableFriends godoc
// @Summary 可邀请的好友
// @Description 当前用户的好友中尚未加入该群组的人
// @Tags 群组
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "群组ID"
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/groups/{id}/available-friends [get]
func (c *GroupController) GetAvailableFriends(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friends, err := c.GroupService.GetAvailableFriends(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, friends)
}
