package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/validation"
	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pagination 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// ValidationErrorResponse 字段校验错误响应，errors为字段名到错误消息列表的映射
func ValidationErrorResponse(c *gin.Context, errs validation.FieldErrors) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "数据校验失败",
		Data:    gin.H{"errors": errs},
	})
}

// LogicErrorResponse 将业务错误映射到HTTP状态码
func LogicErrorResponse(c *gin.Context, err error) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		ValidationErrorResponse(c, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, logic.ErrProjectNotFound), errors.Is(err, logic.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrPermissionDenied):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, logic.ErrEmailTaken), errors.Is(err, logic.ErrNotAcceptingContributions):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, logic.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
