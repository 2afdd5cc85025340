package util

import "errors"

var (
	// 用户
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")

	// 好友关系
	ErrSelfFriendRequest  = errors.New("不能添加自己为好友")
	ErrAlreadyFriends     = errors.New("已经是好友了")
	ErrRequestAlreadySent = errors.New("已经向该用户发送过好友申请")
	ErrReciprocalRequest  = errors.New("对方已向你发送好友申请，请在待处理列表中接受")
	ErrRequestNotFound    = errors.New("好友申请不存在")
	ErrNotFriends         = errors.New("你们还不是好友")

	// 群组
	ErrGroupNotFound        = errors.New("群组不存在")
	ErrNotGroupAdmin        = errors.New("没有该群组的管理员权限")
	ErrNotGroupMember       = errors.New("不是该群组的成员")
	ErrAlreadyGroupMember   = errors.New("该用户已经是群组成员")
	ErrMemberNotFriend      = errors.New("只能添加好友到群组")
	ErrCannotRemoveCreator  = errors.New("不能移除群组创建者")
	ErrCreatorCannotLeave   = errors.New("创建者不能退出群组，只能删除群组")
	ErrOnlyCreatorCanDelete = errors.New("只有创建者可以删除群组")

	// 兴趣
	ErrInterestNotFound = errors.New("兴趣不存在")
	ErrInterestHeld     = errors.New("已经添加过该兴趣")
	ErrInterestNotHeld  = errors.New("未添加该兴趣")

	// 帖子/评论
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrCommentNotFound  = errors.New("评论不存在")
	ErrUnsupportedImage = errors.New("不支持的图片格式")
	ErrImageTooLarge    = errors.New("图片大小超过限制")

	ErrPermissionDenied = errors.New("permission denied")
)
