package util

import (
	"errors"
	"net/http"
	"post_place_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// DomainError 将领域错误映射为对应的HTTP状态码
func DomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrInterestNotFound),
		errors.Is(err, ErrInterestNotHeld):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrAlreadyFriends),
		errors.Is(err, ErrRequestAlreadySent),
		errors.Is(err, ErrReciprocalRequest),
		errors.Is(err, ErrAlreadyGroupMember),
		errors.Is(err, ErrInterestHeld):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotGroupAdmin),
		errors.Is(err, ErrCannotRemoveCreator),
		errors.Is(err, ErrCreatorCannotLeave),
		errors.Is(err, ErrOnlyCreatorCanDelete),
		errors.Is(err, ErrPermissionDenied):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrSelfFriendRequest),
		errors.Is(err, ErrNotFriends),
		errors.Is(err, ErrNotGroupMember),
		errors.Is(err, ErrMemberNotFriend),
		errors.Is(err, ErrUnsupportedImage),
		errors.Is(err, ErrImageTooLarge):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		LogInternalError(c, err)
	}
}
