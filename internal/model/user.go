package model

import (
	"strings"
	"time"
)

// UserModel 平台用户
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FirstName    string `json:"first_name" gorm:"not null"`
	LastName     string `json:"last_name" gorm:"not null"`
	Phone        string `json:"phone" gorm:"not null"`

	EmailVerified bool `json:"email_verified" gorm:"default:false"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "user"
}

// FullName 用户全名
func (u *UserModel) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
