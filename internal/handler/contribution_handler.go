package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/query"
	"github.com/gin-gonic/gin"
)

// ContributionHandler 贡献处理器
type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
}

// NewContributionHandler 创建贡献处理器
func NewContributionHandler(contributionLogic *logic.ContributionLogic) *ContributionHandler {
	return &ContributionHandler{contributionLogic: contributionLogic}
}

// ContributeRequest 贡献请求数据
type ContributeRequest struct {
	Amount  int64  `json:"amount" binding:"required"`
	Message string `json:"message"`
}

// Contribute 向项目发起贡献
func (h *ContributionHandler) Contribute(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	contribution, err := h.contributionLogic.RecordContribution(
		projectId, identity.UserId, req.Amount, req.Message, time.Now())
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "感谢您的贡献", gin.H{
		"contribution": ToContributionResponse(contribution),
	})
}

// GetProjectContributions 获取项目贡献记录
func (h *ContributionHandler) GetProjectContributions(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = query.NormalizePage(page, pageSize)

	contributions, total, err := h.contributionLogic.ListByProject(projectId, page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目贡献记录成功", GetContributionsResponse{
		Contributions: ToContributionResponseList(contributions),
		Pagination:    NewPagination(page, pageSize, total),
	})
}

// GetMyContributions 获取当前用户的贡献记录
func (h *ContributionHandler) GetMyContributions(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = query.NormalizePage(page, pageSize)

	contributions, total, err := h.contributionLogic.ListByContributor(identity.UserId, page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取我的贡献记录成功", GetContributionsResponse{
		Contributions: ToContributionResponseList(contributions),
		Pagination:    NewPagination(page, pageSize, total),
	})
}

// GetContributionStats 获取项目贡献统计信息
func (h *ContributionHandler) GetContributionStats(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	stats, err := h.contributionLogic.GetContributionStats(projectId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取贡献统计信息成功", gin.H{"stats": stats})
}
