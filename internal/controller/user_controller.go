package controller

import (
	"post_place_backend/internal/service"
	"post_place_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfileRequest 资料更新请求，空字段不修改
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=50"`
	Avatar   string `json:"avatar"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 更新当前用户的名称、头像或密码
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpdateProfileRequest true "资料字段"
// @Success 200 {object} util.Response{data=model.User} "更新成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, service.UpdateProfileInput{
		Name:     req.Name,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// DeleteAccount godoc
// @Summary 注销账号
// @Description 删除当前用户及其全部帖子、评论、好友关系、群组和兴趣数据
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response "删除成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users/me [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.UserService.DeleteAccount(claims.UserID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "账号已注销"})
}

// GetCommentedPosts godoc
// @Summary 我评论过的帖子
// @Description 当前用户发表过评论的帖子列表，最新在前
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Post} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users/me/commented-posts [get]
func (c *UserController) GetCommentedPosts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	posts, err := c.UserService.GetCommentedPosts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, posts)
}
