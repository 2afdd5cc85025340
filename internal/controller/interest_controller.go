package controller

import (
	"post_place_backend/internal/service"
	"post_place_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InterestController struct {
	InterestService *service.InterestService
}

func NewInterestController(interestService *service.InterestService) *InterestController {
	return &InterestController{InterestService: interestService}
}

// AddInterestRequest 添加兴趣请求
type AddInterestRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCatalog godoc
// @Summary 兴趣目录
// @Description 全部可选兴趣，按分类和名称排序
// @Tags 兴趣
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Interest} "成功"
// @Router /api/interests [get]
func (c *InterestController) ListCatalog(ctx *gin.Context) {
	interests, err := c.InterestService.ListCatalog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, interests)
}

// ListMine godoc
// @Summary 我的兴趣
// @Tags 兴趣
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Interest} "成功"
// @Router /api/interests/mine [get]
func (c *InterestController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	interests, err := c.InterestService.ListUserInterests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, interests)
}

// AddInterest godoc
// @Summary 添加兴趣
// @Description 从目录中选择兴趣添加到自己的列表
// @Tags 兴趣
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AddInterestRequest true "兴趣名称"
// @Success 201 {object} util.Response{data=model.Interest} "添加成功"
// @Failure 404 {object} util.Response "兴趣不存在"
// @Failure 409 {object} util.Response "已添加过"
// @Router /api/interests/mine [post]
func (c *InterestController) AddInterest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddInterestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	interest, err := c.InterestService.AddInterest(claims.UserID, req.Name)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, interest)
}

// RemoveInterest godoc
// @Summary 移除兴趣
// @Tags 兴趣
// @Produce  json
// @Security BearerAuth
// @Param   name path string true "兴趣名称"
// @Success 200 {object} util.Response "移除成功"
// @Failure 404 {object} util.Response "未添加该兴趣"
// @Router /api/interests/mine/{name} [delete]
func (c *InterestController) RemoveInterest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.InterestService.RemoveInterest(claims.UserID, ctx.Param("name")); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "兴趣已移除"})
}

// GetStats godoc
// @Summary 兴趣统计
// @Description 当前用户的兴趣数量和涉及的分类
// @Tags 兴趣
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=repository.InterestStats} "成功"
// @Router /api/interests/stats [get]
func (c *InterestController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.InterestService.GetStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// GetRecommendations godoc
// @Summary 好友推荐
// @Description 按共同兴趣数量推荐用户，排除好友和待处理申请
// @Tags 兴趣
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "返回数量上限，默认20"
// @Success 200 {object} util.Response{data=[]repository.Recommendation} "成功"
// @Router /api/interests/recommendations [get]
func (c *InterestController) GetRecommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	recs, err := c.InterestService.Recommend(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}
