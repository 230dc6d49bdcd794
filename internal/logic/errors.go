package logic

import "errors"

// 业务错误，由handler层映射到HTTP状态码
var (
	ErrProjectNotFound           = errors.New("项目不存在")
	ErrUserNotFound              = errors.New("用户不存在")
	ErrPermissionDenied          = errors.New("没有权限操作该项目")
	ErrEmailTaken                = errors.New("该邮箱已被注册")
	ErrInvalidCredentials        = errors.New("邮箱或密码错误")
	ErrNotAcceptingContributions = errors.New("该项目当前不接受贡献")
)
