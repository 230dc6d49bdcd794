package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/query"
	"github.com/blues/cfp/internal/validation"
	"gorm.io/gorm"
)

// ContributionLogic 贡献记录业务逻辑
type ContributionLogic struct {
	db    *gorm.DB
	rules *validation.Rules
}

// NewContributionLogic 创建贡献记录业务逻辑
func NewContributionLogic(db *gorm.DB, rules *validation.Rules) *ContributionLogic {
	return &ContributionLogic{db: db, rules: rules}
}

// RecordContribution 记录一笔贡献并重算项目筹款总额。
// 缓存总额始终以贡献记录全量求和为准，而非增量累加，
// 这样即使记录被后台删改，下一次写入也会把缓存拉回正确值。
func (c *ContributionLogic) RecordContribution(projectId, contributorId, amount int64, message string, now time.Time) (*model.ContributionModel, error) {
	if errs := c.rules.ValidateContribution(amount, message); errs != nil {
		return nil, errs
	}

	var project model.ProjectModel
	if err := c.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}

	// 只有上架且处于活动期内的项目才接受贡献
	if !project.AcceptsContributionsAt(now) {
		return nil, ErrNotAcceptingContributions
	}

	contribution := &model.ContributionModel{
		ProjectId:     projectId,
		ContributorId: contributorId,
		Amount:        amount,
		Message:       strings.TrimSpace(message),
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contribution).Error; err != nil {
			return fmt.Errorf("创建贡献记录失败: %w", err)
		}
		if _, err := RecomputeFunding(tx, projectId); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contribution, nil
}

// ListByProject 获取项目的贡献记录（分页，按时间倒序）
func (c *ContributionLogic) ListByProject(projectId int64, page, pageSize int) ([]model.ContributionModel, int64, error) {
	var total int64
	if err := c.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", projectId).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计贡献记录数失败: %w", err)
	}

	var contributions []model.ContributionModel
	listed := query.Apply(c.db.Where("project_id = ?", projectId),
		query.SortBy("-created_at", "-created_at", "-created_at"),
		query.Paginate(page, pageSize),
	)
	if err := listed.Find(&contributions).Error; err != nil {
		return nil, 0, fmt.Errorf("获取贡献记录失败: %w", err)
	}

	return contributions, total, nil
}

// ListByContributor 获取用户的贡献记录（分页，按时间倒序）
func (c *ContributionLogic) ListByContributor(contributorId int64, page, pageSize int) ([]model.ContributionModel, int64, error) {
	var total int64
	if err := c.db.Model(&model.ContributionModel{}).
		Where("contributor_id = ?", contributorId).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计贡献记录数失败: %w", err)
	}

	var contributions []model.ContributionModel
	listed := query.Apply(c.db.Where("contributor_id = ?", contributorId),
		query.SortBy("-created_at", "-created_at", "-created_at"),
		query.Paginate(page, pageSize),
	)
	if err := listed.Find(&contributions).Error; err != nil {
		return nil, 0, fmt.Errorf("获取贡献记录失败: %w", err)
	}

	return contributions, total, nil
}

// GetContributionStats 获取项目的贡献统计信息
func (c *ContributionLogic) GetContributionStats(projectId int64) (map[string]interface{}, error) {
	var stats struct {
		TotalContributions int64
		TotalAmount        int64
		UniqueContributors int64
	}

	if err := c.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", projectId).
		Count(&stats.TotalContributions).Error; err != nil {
		return nil, fmt.Errorf("统计贡献记录数失败: %w", err)
	}

	if err := c.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", projectId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalAmount).Error; err != nil {
		return nil, fmt.Errorf("统计贡献总额失败: %w", err)
	}

	if err := c.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", projectId).
		Distinct("contributor_id").
		Count(&stats.UniqueContributors).Error; err != nil {
		return nil, fmt.Errorf("统计贡献者数量失败: %w", err)
	}

	averageAmount := float64(0)
	if stats.TotalContributions > 0 {
		averageAmount = float64(stats.TotalAmount) / float64(stats.TotalContributions)
	}

	return map[string]interface{}{
		"total_contributions": stats.TotalContributions,
		"total_amount":        stats.TotalAmount,
		"unique_contributors": stats.UniqueContributors,
		"average_amount":      averageAmount,
	}, nil
}
