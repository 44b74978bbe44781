package user

import (
	"time"

	"petcare/pkg/token"
)

// RegisterRequest 注册入参
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Nickname string `json:"nickname" binding:"max=32"`
}

// LoginRequest 用户与管理员登录共用
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 只更新非空字段
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,min=1,max=32"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=512"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Gender   *string `json:"gender" binding:"omitempty,oneof=unknown male female"`
	Bio      *string `json:"bio" binding:"omitempty,max=255"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type BindOpenIDRequest struct {
	OpenID string `json:"openid" binding:"required,max=64"`
}

type AddressRequest struct {
	Receiver  string `json:"receiver" binding:"required,max=32"`
	Phone     string `json:"phone" binding:"required"`
	Province  string `json:"province" binding:"max=32"`
	City      string `json:"city" binding:"max=32"`
	District  string `json:"district" binding:"max=32"`
	Detail    string `json:"detail" binding:"required,max=255"`
	IsDefault bool   `json:"is_default"`
}

// ListUsersRequest 管理端用户检索
type ListUsersRequest struct {
	Keyword  string `form:"keyword"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"max=32"`
	IsSuper  bool   `json:"is_super"`
}

// AuthResponse 登录/注册返回令牌与账号信息
type AuthResponse struct {
	Token *token.Pair      `json:"token"`
	User  *ProfileResponse `json:"user,omitempty"`
	Admin *AdminResponse   `json:"admin,omitempty"`
}

// ProfileResponse 本人可见的完整资料
type ProfileResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Nickname       string    `json:"nickname"`
	Avatar         string    `json:"avatar"`
	Phone          string    `json:"phone"`
	Gender         string    `json:"gender"`
	Bio            string    `json:"bio"`
	OpenIDBound    bool      `json:"openid_bound"`
	Balance        int64     `json:"balance"`
	Integral       int64     `json:"integral"`
	IsActive       bool      `json:"is_active"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	PostCount      int       `json:"post_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// PublicProfileResponse 他人可见的资料
type PublicProfileResponse struct {
	ID             string `json:"id"`
	Nickname       string `json:"nickname"`
	Avatar         string `json:"avatar"`
	Gender         string `json:"gender"`
	Bio            string `json:"bio"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	PostCount      int    `json:"post_count"`
}

type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	IsSuper   bool      `json:"is_super"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AddressResponse struct {
	ID        string    `json:"id"`
	Receiver  string    `json:"receiver"`
	Phone     string    `json:"phone"`
	Province  string    `json:"province"`
	City      string    `json:"city"`
	District  string    `json:"district"`
	Detail    string    `json:"detail"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
