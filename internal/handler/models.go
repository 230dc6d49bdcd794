package handler

import (
	"time"

	"github.com/blues/cfp/internal/model"
)

// 项目相关响应模型

// ProjectResponse 项目响应模型，派生字段按请求时刻计算
type ProjectResponse struct {
	Id                int64     `json:"id"`
	Title             string    `json:"title"`
	Details           string    `json:"details"`
	ImageURL          string    `json:"imageUrl"`
	OwnerId           int64     `json:"ownerId"`
	TargetAmount      int64     `json:"targetAmount"`
	CurrentAmount     int64     `json:"currentAmount"`
	FundingPercentage float64   `json:"fundingPercentage"`
	DaysLeft          int       `json:"daysLeft"`
	Status            string    `json:"status"`
	IsActive          bool      `json:"isActive"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToProjectResponse 转换项目响应模型
func ToProjectResponse(p *model.ProjectModel, now time.Time) ProjectResponse {
	return ProjectResponse{
		Id:                p.Id,
		Title:             p.Title,
		Details:           p.Details,
		ImageURL:          p.ImageURL,
		OwnerId:           p.OwnerId,
		TargetAmount:      p.TargetAmount,
		CurrentAmount:     p.CurrentAmount,
		FundingPercentage: p.FundingPercentage(),
		DaysLeft:          p.DaysLeftAt(now),
		Status:            string(p.StatusAt(now)),
		IsActive:          p.IsActive,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToProjectResponseList 转换项目响应模型列表
func ToProjectResponseList(projects []model.ProjectModel, now time.Time) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, ToProjectResponse(&projects[i], now))
	}
	return responses
}

// GetProjectsResponse 获取项目列表响应
type GetProjectsResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	Pagination Pagination        `json:"pagination"`
}

// 贡献记录相关响应模型

// ContributionResponse 贡献记录响应模型
type ContributionResponse struct {
	Id            int64     `json:"id"`
	ProjectId     int64     `json:"projectId"`
	ContributorId int64     `json:"contributorId"`
	Amount        int64     `json:"amount"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToContributionResponse 转换贡献记录响应模型
func ToContributionResponse(c *model.ContributionModel) ContributionResponse {
	return ContributionResponse{
		Id:            c.Id,
		ProjectId:     c.ProjectId,
		ContributorId: c.ContributorId,
		Amount:        c.Amount,
		Message:       c.Message,
		CreatedAt:     c.CreatedAt,
	}
}

// ToContributionResponseList 转换贡献记录响应模型列表
func ToContributionResponseList(contributions []model.ContributionModel) []ContributionResponse {
	responses := make([]ContributionResponse, 0, len(contributions))
	for i := range contributions {
		responses = append(responses, ToContributionResponse(&contributions[i]))
	}
	return responses
}

// GetContributionsResponse 获取贡献记录列表响应
type GetContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
	Pagination    Pagination             `json:"pagination"`
}

// 用户相关响应模型

// UserResponse 用户响应模型
type UserResponse struct {
	Id        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse 转换用户响应模型
func ToUserResponse(u *model.UserModel) UserResponse {
	return UserResponse{
		Id:        u.Id,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
