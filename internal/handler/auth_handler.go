package handler

import (
	"net/http"

	"github.com/blues/cfp/internal/logic"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	userLogic *logic.UserLogic
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(userLogic *logic.UserLogic) *AuthHandler {
	return &AuthHandler{userLogic: userLogic}
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var input logic.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	user, err := h.userLogic.Register(&input)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功", gin.H{"user": ToUserResponse(user)})
}

// LoginRequest 登录请求数据
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	user, access, refresh, err := h.userLogic.Login(req.Email, req.Password)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "登录成功", LoginResponse{
		User:         ToUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Me 获取当前登录用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	user, err := h.userLogic.GetUser(identity.UserId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取用户信息成功", gin.H{"user": ToUserResponse(user)})
}
