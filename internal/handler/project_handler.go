package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/query"
	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projectLogic *logic.ProjectLogic) *ProjectHandler {
	return &ProjectHandler{projectLogic: projectLogic}
}

// CreateProjectRequest 创建项目请求数据
type CreateProjectRequest struct {
	Title        string    `json:"title" binding:"required"`
	Details      string    `json:"details" binding:"required"`
	ImageURL     string    `json:"image_url"`
	TargetAmount int64     `json:"target_amount" binding:"required"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	project := &model.ProjectModel{
		Title:        req.Title,
		Details:      req.Details,
		ImageURL:     req.ImageURL,
		TargetAmount: req.TargetAmount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}

	now := time.Now()
	if err := h.projectLogic.CreateProject(project, identity.UserId, now); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", gin.H{"project": ToProjectResponse(project, now)})
}

// GetProjects 获取项目列表，支持搜索、过滤、排序、分页的组合
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	now := time.Now()

	q := &logic.ListQuery{
		Keyword: c.Query("search"),
		Status:  c.Query("status"),
		SortBy:  c.Query("sort"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "12"))
	q.Page, q.PageSize = query.NormalizePage(q.Page, q.PageSize)
	q.MinTarget, _ = strconv.ParseInt(c.Query("min_target"), 10, 64)
	q.MaxTarget, _ = strconv.ParseInt(c.Query("max_target"), 10, 64)

	if dateStr := c.Query("active_on"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "无效的日期格式，应为YYYY-MM-DD")
			return
		}
		q.ActiveOn = &date
	}

	projects, total, err := h.projectLogic.ListProjects(q, now)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", GetProjectsResponse{
		Projects:   ToProjectResponseList(projects, now),
		Pagination: NewPagination(q.Page, q.PageSize, total),
	})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目详情成功", gin.H{"project": ToProjectResponse(project, time.Now())})
}

// UpdateProject 更新项目（仅所有者）
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var input logic.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	now := time.Now()
	project, err := h.projectLogic.UpdateProject(id, identity.UserId, &input, now)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目更新成功", gin.H{"project": ToProjectResponse(project, now)})
}

// DeleteProject 删除项目及其贡献记录（仅所有者）
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	if err := h.projectLogic.DeleteProject(id, identity.UserId); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目删除成功", nil)
}

// ToggleActive 切换项目上下架状态（仅所有者）
func (h *ProjectHandler) ToggleActive(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.ToggleActive(id, identity.UserId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目状态切换成功", gin.H{"is_active": project.IsActive})
}

// GetProjectStats 获取项目统计信息
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	stats, err := h.projectLogic.GetProjectStats(id, time.Now())
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目统计信息成功", gin.H{"stats": stats})
}

// GetPlatformStats 获取平台统计信息
func (h *ProjectHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.projectLogic.GetPlatformStats(time.Now())
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取平台统计信息成功", gin.H{"stats": stats})
}

// GetMyProjects 获取当前用户的项目列表
func (h *ProjectHandler) GetMyProjects(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	now := time.Now()
	q := &logic.ListQuery{
		OwnerId:         identity.UserId,
		IncludeInactive: true,
		SortBy:          c.Query("sort"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	q.Page, q.PageSize = query.NormalizePage(q.Page, q.PageSize)

	projects, total, err := h.projectLogic.ListProjects(q, now)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取我的项目成功", GetProjectsResponse{
		Projects:   ToProjectResponseList(projects, now),
		Pagination: NewPagination(q.Page, q.PageSize, total),
	})
}

// GetDashboard 获取当前用户的统计面板数据
func (h *ProjectHandler) GetDashboard(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
		return
	}

	stats, err := h.projectLogic.GetDashboardStats(identity.UserId, time.Now())
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取面板数据成功", gin.H{"stats": stats})
}
