package model

import (
	"time"
)

// ContributionModel 贡献记录，创建后不可变更
type ContributionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId     int64  `json:"project_id" gorm:"not null;index"`
	ContributorId int64  `json:"contributor_id" gorm:"not null;index"`
	Amount        int64  `json:"amount" gorm:"not null"`
	Message       string `json:"message" gorm:"type:text"`
}

// TableName 自定义表名
func (ContributionModel) TableName() string {
	return "contribution"
}
