package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/query"
	"github.com/blues/cfp/internal/validation"
	"gorm.io/gorm"
)

// 项目列表允许的排序字段
var projectSortFields = []string{
	"-created_at", "created_at",
	"-target_amount", "target_amount",
	"-current_amount", "current_amount",
	"title", "-title",
	"end_date", "-end_date",
}

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db    *gorm.DB
	rules *validation.Rules
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB, rules *validation.Rules) *ProjectLogic {
	return &ProjectLogic{db: db, rules: rules}
}

// CreateProject 创建项目，所有者来自认证身份
func (p *ProjectLogic) CreateProject(project *model.ProjectModel, ownerId int64, now time.Time) error {
	if errs := p.rules.ValidateProject(project, true, now); errs != nil {
		return errs
	}

	// 新项目强制初始状态
	project.OwnerId = ownerId
	project.CurrentAmount = 0
	project.IsActive = true

	if err := p.db.Create(project).Error; err != nil {
		return fmt.Errorf("创建项目失败: %w", err)
	}
	return nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}

// ListQuery 项目列表查询条件
type ListQuery struct {
	Keyword         string
	Status          string
	ActiveOn        *time.Time
	MinTarget       int64
	MaxTarget       int64
	OwnerId         int64 // 0表示不限
	IncludeInactive bool  // 默认只返回未下架项目
	SortBy          string
	Page            int
	PageSize        int
}

// ListProjects 按组合条件查询项目列表
func (p *ProjectLogic) ListProjects(q *ListQuery, now time.Time) ([]model.ProjectModel, int64, error) {
	filters := []query.Option{
		query.Search(q.Keyword, "title", "details"),
		query.CampaignStatus(q.Status, now),
		query.TargetRange(q.MinTarget, q.MaxTarget),
	}
	if !q.IncludeInactive {
		filters = append(filters, query.OnlyActive())
	}
	if q.OwnerId > 0 {
		filters = append(filters, query.OwnedBy(q.OwnerId))
	}
	if q.ActiveOn != nil {
		filters = append(filters, query.ActiveOn(*q.ActiveOn))
	}

	var total int64
	counted := query.Apply(p.db.Model(&model.ProjectModel{}), filters...)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计项目数量失败: %w", err)
	}

	var projects []model.ProjectModel
	listed := query.Apply(p.db.Model(&model.ProjectModel{}),
		append(filters,
			query.SortBy(q.SortBy, "-created_at", projectSortFields...),
			query.Paginate(q.Page, q.PageSize),
		)...)
	if err := listed.Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目列表失败: %w", err)
	}

	return projects, total, nil
}

// UpdateProjectInput 可更新字段，nil表示不修改
type UpdateProjectInput struct {
	Title        *string    `json:"title"`
	Details      *string    `json:"details"`
	ImageURL     *string    `json:"image_url"`
	TargetAmount *int64     `json:"target_amount"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// UpdateProject 更新项目，仅所有者可操作
func (p *ProjectLogic) UpdateProject(id, ownerId int64, input *UpdateProjectInput, now time.Time) (*model.ProjectModel, error) {
	project, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}
	if project.OwnerId != ownerId {
		return nil, ErrPermissionDenied
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Details != nil {
		project.Details = *input.Details
	}
	if input.ImageURL != nil {
		project.ImageURL = *input.ImageURL
	}
	if input.TargetAmount != nil {
		project.TargetAmount = *input.TargetAmount
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = *input.EndDate
	}

	if errs := p.rules.ValidateProject(project, false, now); errs != nil {
		return nil, errs
	}

	if err := p.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("更新项目失败: %w", err)
	}
	return project, nil
}

// DeleteProject 删除项目并级联删除其贡献记录，仅所有者可操作
func (p *ProjectLogic) DeleteProject(id, ownerId int64) error {
	project, err := p.GetProject(id)
	if err != nil {
		return err
	}
	if project.OwnerId != ownerId {
		return ErrPermissionDenied
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.ContributionModel{}).Error; err != nil {
			return fmt.Errorf("删除贡献记录失败: %w", err)
		}
		if err := tx.Delete(&model.ProjectModel{}, id).Error; err != nil {
			return fmt.Errorf("删除项目失败: %w", err)
		}
		return nil
	})
}

// ToggleActive 切换项目上下架状态，仅所有者可操作
func (p *ProjectLogic) ToggleActive(id, ownerId int64) (*model.ProjectModel, error) {
	project, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}
	if project.OwnerId != ownerId {
		return nil, ErrPermissionDenied
	}

	project.IsActive = !project.IsActive
	if err := p.db.Model(project).Update("is_active", project.IsActive).Error; err != nil {
		return nil, fmt.Errorf("更新项目状态失败: %w", err)
	}
	return project, nil
}

// RecomputeFunding 以贡献记录为准全量重算项目的缓存筹款总额
func (p *ProjectLogic) RecomputeFunding(projectId int64) (int64, error) {
	return RecomputeFunding(p.db, projectId)
}

// RecomputeFunding 在给定连接（可以是事务）内重算缓存总额
func RecomputeFunding(db *gorm.DB, projectId int64) (int64, error) {
	var total int64
	err := db.Model(&model.ContributionModel{}).
		Where("project_id = ?", projectId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("汇总贡献金额失败: %w", err)
	}

	err = db.Model(&model.ProjectModel{}).
		Where("id = ?", projectId).
		Update("current_amount", total).Error
	if err != nil {
		return 0, fmt.Errorf("更新筹款总额失败: %w", err)
	}
	return total, nil
}

// GetProjectStats 获取项目统计信息
func (p *ProjectLogic) GetProjectStats(id int64, now time.Time) (map[string]interface{}, error) {
	project, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}

	var contributionCount int64
	if err := p.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", id).
		Count(&contributionCount).Error; err != nil {
		return nil, fmt.Errorf("统计贡献记录数失败: %w", err)
	}

	var contributorCount int64
	if err := p.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", id).
		Distinct("contributor_id").
		Count(&contributorCount).Error; err != nil {
		return nil, fmt.Errorf("统计贡献者数量失败: %w", err)
	}

	return map[string]interface{}{
		"project_id":         project.Id,
		"current_amount":     project.CurrentAmount,
		"target_amount":      project.TargetAmount,
		"funding_percentage": project.FundingPercentage(),
		"days_left":          project.DaysLeftAt(now),
		"status":             project.StatusAt(now),
		"contribution_count": contributionCount,
		"contributor_count":  contributorCount,
	}, nil
}

// GetPlatformStats 获取平台整体统计信息（首页用）
func (p *ProjectLogic) GetPlatformStats(now time.Time) (map[string]interface{}, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var totalProjects int64
	if err := p.db.Model(&model.ProjectModel{}).
		Where("is_active = ?", true).
		Count(&totalProjects).Error; err != nil {
		return nil, fmt.Errorf("统计项目总数失败: %w", err)
	}

	var totalFunding int64
	if err := p.db.Model(&model.ProjectModel{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(current_amount), 0)").
		Scan(&totalFunding).Error; err != nil {
		return nil, fmt.Errorf("统计筹款总额失败: %w", err)
	}

	var activeProjects int64
	if err := p.db.Model(&model.ProjectModel{}).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, today, today).
		Count(&activeProjects).Error; err != nil {
		return nil, fmt.Errorf("统计进行中项目数失败: %w", err)
	}

	var totalContributors int64
	if err := p.db.Model(&model.ContributionModel{}).
		Distinct("contributor_id").
		Count(&totalContributors).Error; err != nil {
		return nil, fmt.Errorf("统计贡献者总数失败: %w", err)
	}

	return map[string]interface{}{
		"total_projects":     totalProjects,
		"active_projects":    activeProjects,
		"total_funding":      totalFunding,
		"total_contributors": totalContributors,
	}, nil
}

// GetDashboardStats 获取用户个人统计信息
func (p *ProjectLogic) GetDashboardStats(userId int64, now time.Time) (map[string]interface{}, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var projectCount int64
	if err := p.db.Model(&model.ProjectModel{}).
		Where("owner_id = ?", userId).
		Count(&projectCount).Error; err != nil {
		return nil, fmt.Errorf("统计用户项目数失败: %w", err)
	}

	var fundingRaised int64
	if err := p.db.Model(&model.ProjectModel{}).
		Where("owner_id = ?", userId).
		Select("COALESCE(SUM(current_amount), 0)").
		Scan(&fundingRaised).Error; err != nil {
		return nil, fmt.Errorf("统计用户筹款总额失败: %w", err)
	}

	var contributed int64
	if err := p.db.Model(&model.ContributionModel{}).
		Where("contributor_id = ?", userId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&contributed).Error; err != nil {
		return nil, fmt.Errorf("统计用户贡献总额失败: %w", err)
	}

	var activeProjects int64
	if err := p.db.Model(&model.ProjectModel{}).
		Where("owner_id = ? AND is_active = ? AND end_date >= ?", userId, true, today).
		Count(&activeProjects).Error; err != nil {
		return nil, fmt.Errorf("统计用户进行中项目数失败: %w", err)
	}

	return map[string]interface{}{
		"total_projects_created": projectCount,
		"total_funding_raised":   fundingRaised,
		"total_contributed":      contributed,
		"active_projects":        activeProjects,
	}, nil
}
