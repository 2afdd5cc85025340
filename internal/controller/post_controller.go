package controller

import (
	"post_place_backend/internal/service"
	"post_place_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
	Publisher   service.EventPublisher
}

func NewPostController(postService *service.PostService, publisher service.EventPublisher) *PostController {
	return &PostController{
		PostService: postService,
		Publisher:   publisher,
	}
}

// UpdatePostRequest 帖子更新请求
type UpdatePostRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// CommentRequest 评论内容
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// ListPosts godoc
// @Summary 帖子列表
// @Description 全部帖子，按发布时间倒序，带作者和评论
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Post} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	posts, err := c.PostService.ListPosts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// ListMyPosts godoc
// @Summary 我的帖子
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Post} "成功"
// @Router /api/posts/me [get]
func (c *PostController) ListMyPosts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	posts, err := c.PostService.ListUserPosts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// ListUserPosts godoc
// @Summary 指定用户的帖子
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Param   userId path int true "用户ID"
// @Success 200 {object} util.Response{data=[]model.Post} "成功"
// @Failure 400 {object} util.Response "用户ID无效"
// @Router /api/posts/user/{userId} [get]
func (c *PostController) ListUserPosts(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	posts, err := c.PostService.ListUserPosts(uint(userID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// SearchPosts godoc
// @Summary 搜索帖子
// @Description 按关键词搜索帖子标题和正文，不区分大小写
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Param   q query string true "搜索词"
// @Success 200 {object} util.Response{data=[]model.Post} "成功"
// @Failure 400 {object} util.Response "搜索词不能为空"
// @Router /api/posts/search [get]
func (c *PostController) SearchPosts(ctx *gin.Context) {
	term := ctx.Query("q")
	if term == "" {
		util.BadRequest(ctx, "搜索词不能为空")
		return
	}

	posts, err := c.PostService.SearchPosts(term)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// GetPost godoc
// @Summary 帖子详情
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response{data=model.Post} "成功"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.PostService.GetPost(ctx.Param("id"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// CreatePost godoc
// @Summary 发布帖子
// @Description multipart 表单提交，image 字段可选，限 5MB 以内的图片
// @Tags 帖子
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   title formData string true "标题"
// @Param   content formData string true "正文"
// @Param   image formData file false "配图"
// @Success 201 {object} util.Response{data=model.Post} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	title := ctx.PostForm("title")
	content := ctx.PostForm("content")
	if title == "" || content == "" {
		util.BadRequest(ctx, "标题和正文不能为空")
		return
	}

	// 没有上传图片时 FormFile 返回错误，直接忽略
	image, _ := ctx.FormFile("image")

	post, err := c.PostService.CreatePost(ctx.Request.Context(), claims.UserID, title, content, image)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("new_post", post)
	util.Created(ctx, post)
}

// UpdatePost godoc
// @Summary 更新帖子
// @Description 仅作者可更新帖子正文
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子ID"
// @Param   body body UpdatePostRequest true "新正文"
// @Success 200 {object} util.Response{data=model.Post} "更新成功"
// @Failure 403 {object} util.Response "不是帖子作者"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.PostService.UpdatePost(ctx.Param("id"), claims.UserID, req.Content)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("post_updated", post)
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary 删除帖子
// @Description 仅作者可删除，帖子下的评论一并删除
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 403 {object} util.Response "不是帖子作者"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	postID := ctx.Param("id")
	if err := c.PostService.DeletePost(ctx.Request.Context(), postID, claims.UserID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("post_deleted", gin.H{"id": postID})
	util.Success(ctx, gin.H{"message": "帖子已删除"})
}

// AddComment godoc
// @Summary 发表评论
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子ID"
// @Param   body body CommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment} "创建成功"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	postID := ctx.Param("id")
	comment, err := c.PostService.AddComment(postID, claims.UserID, req.Content)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	c.Publisher.Broadcast("new_comment", gin.H{"postId": postID, "comment": comment})
	util.Created(ctx, comment)
}

// UpdateComment godoc
// @Summary 更新评论
// @Description 仅评论作者可操作
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   commentId path string true "评论ID"
// @Param   body body CommentRequest true "新内容"
// @Success 200 {object} util.Response{data=model.Comment} "更新成功"
// @Failure 403 {object} util.Response "不是评论作者"
// @Failure 404 {object} util.Response "评论不存在"
// @Router /api/posts/comments/{commentId} [put]
func (c *PostController) UpdateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.PostService.UpdateComment(ctx.Param("commentId"), claims.UserID, req.Content)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, comment)
}

// DeleteComment godoc
// @Summary 删除评论
// @Description 仅评论作者可操作
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Param   commentId path string true "评论ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 403 {object} util.Response "不是评论作者"
// @Failure 404 {object} util.Response "评论不存在"
// @Router /api/posts/comments/{commentId} [delete]
func (c *PostController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.PostService.DeleteComment(ctx.Param("commentId"), claims.UserID); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "评论已删除"})
}
