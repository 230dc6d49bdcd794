package model

import (
	"time"
)

// ProjectModel 众筹项目模型，金额统一以整数EGP存储
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title    string `json:"title" gorm:"not null" binding:"required"`
	Details  string `json:"details" gorm:"type:text"`
	ImageURL string `json:"image_url"`

	// 众筹信息
	TargetAmount  int64 `json:"target_amount" gorm:"not null" binding:"required,min=0"`
	CurrentAmount int64 `json:"current_amount" gorm:"default:0"`

	// 时间信息
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`

	// 状态
	IsActive bool `json:"is_active" gorm:"default:true"`

	// 创建者信息
	OwnerId int64 `json:"owner_id" gorm:"not null;index"`
}

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusInactive CampaignStatus = "inactive" // 已下架
	CampaignStatusUpcoming CampaignStatus = "upcoming" // 待开始
	CampaignStatusActive   CampaignStatus = "active"   // 进行中
	CampaignStatusEnded    CampaignStatus = "ended"    // 已结束
)

// FundingPercentage 筹款完成百分比，不做100%封顶
func (p *ProjectModel) FundingPercentage() float64 {
	if p.TargetAmount > 0 {
		return float64(p.CurrentAmount) / float64(p.TargetAmount) * 100
	}
	return 0
}

// DaysLeftAt 活动剩余天数，按自然日计算，最小为0
func (p *ProjectModel) DaysLeftAt(now time.Time) int {
	days := int(dateOf(p.EndDate).Sub(dateOf(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// StatusAt 活动状态，is_active=false优先于日期判断
func (p *ProjectModel) StatusAt(now time.Time) CampaignStatus {
	today := dateOf(now)
	if !p.IsActive {
		return CampaignStatusInactive
	}
	if today.Before(dateOf(p.StartDate)) {
		return CampaignStatusUpcoming
	}
	if today.After(dateOf(p.EndDate)) {
		return CampaignStatusEnded
	}
	return CampaignStatusActive
}

// IsCampaignActiveAt 活动是否正在进行
func (p *ProjectModel) IsCampaignActiveAt(now time.Time) bool {
	today := dateOf(now)
	return p.IsActive && !today.Before(dateOf(p.StartDate)) && !today.After(dateOf(p.EndDate))
}

// AcceptsContributionsAt 活动当前是否接受贡献
func (p *ProjectModel) AcceptsContributionsAt(now time.Time) bool {
	return p.IsCampaignActiveAt(now)
}

// dateOf 截断到自然日，统一用UTC保证日期差为整天
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
