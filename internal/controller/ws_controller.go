package controller

import (
	"post_place_backend/internal/service"
	"post_place_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WSController struct {
	Hub *service.EventHub
}

func NewWSController(hub *service.EventHub) *WSController {
	return &WSController{Hub: hub}
}

// HandleWS godoc
// @Summary 实时事件推送
// @Description 升级为 WebSocket 连接，服务端推送 {"type","data"} 格式的事件
// @Tags 实时
// @Security BearerAuth
// @Param   token query string false "访问令牌，握手无法携带头时使用"
// @Success 101 "协议切换"
// @Failure 401 {object} util.Response "未授权"
// @Router /ws [get]
func (c *WSController) HandleWS(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	service.ServeWs(c.Hub, ctx.Writer, ctx.Request, claims.UserID)
}
