package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db     *gorm.DB
	rules  *validation.Rules
	tokens *auth.TokenManager
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB, rules *validation.Rules, tokens *auth.TokenManager) *UserLogic {
	return &UserLogic{db: db, rules: rules, tokens: tokens}
}

// RegisterInput 注册请求数据
type RegisterInput struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// Register 注册新用户
func (u *UserLogic) Register(input *RegisterInput) (*model.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if errs := u.rules.ValidateRegistration(
		email, input.Password, input.FirstName, input.LastName, input.Phone); errs != nil {
		return nil, errs
	}

	// 检查邮箱是否已注册
	var count int64
	if err := u.db.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := &model.UserModel{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
	}
	if err := u.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return user, nil
}

// Login 校验凭证并签发令牌
func (u *UserLogic) Login(email, password string) (*model.UserModel, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.UserModel
	if err := u.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := u.tokens.CreateTokens(&auth.Identity{
		UserId: user.Id,
		Email:  user.Email,
		Name:   user.FullName(),
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("签发令牌失败: %w", err)
	}

	return &user, access, refresh, nil
}

// GetUser 获取用户信息
func (u *UserLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}
