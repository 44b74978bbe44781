package po

import (
	"time"

	"petcare/domain/user"
)

type UserPO struct {
	ID             string    `gorm:"primaryKey;size:64"`
	Username       string    `gorm:"size:32;uniqueIndex;not null"`
	PasswordHash   string    `gorm:"size:100;not null"`
	Nickname       string    `gorm:"size:64"`
	Avatar         string    `gorm:"size:500"`
	Phone          string    `gorm:"size:20;index"`
	Gender         string    `gorm:"size:10;default:unknown"`
	Bio            string    `gorm:"size:500"`
	OpenID         string    `gorm:"size:64;index"`
	Balance        int64     `gorm:"not null;default:0"`
	Integral       int64     `gorm:"not null;default:0"`
	IsActive       bool      `gorm:"default:true"`
	FollowerCount  int       `gorm:"not null;default:0"`
	FollowingCount int       `gorm:"not null;default:0"`
	PostCount      int       `gorm:"not null;default:0"`
	Version        int       `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:             u.ID(),
		Username:       u.Username(),
		PasswordHash:   u.PasswordHash(),
		Nickname:       u.Nickname(),
		Avatar:         u.Avatar(),
		Phone:          u.Phone(),
		Gender:         string(u.Gender()),
		Bio:            u.Bio(),
		OpenID:         u.OpenID(),
		Balance:        u.Balance(),
		Integral:       u.Integral(),
		IsActive:       u.IsActive(),
		FollowerCount:  u.FollowerCount(),
		FollowingCount: u.FollowingCount(),
		PostCount:      u.PostCount(),
		Version:        u.Version(),
		CreatedAt:      u.CreatedAt(),
		UpdatedAt:      u.UpdatedAt(),
	}
}

func (po *UserPO) ToDomain() *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:             po.ID,
		Username:       po.Username,
		PasswordHash:   po.PasswordHash,
		Nickname:       po.Nickname,
		Avatar:         po.Avatar,
		Phone:          po.Phone,
		Gender:         po.Gender,
		Bio:            po.Bio,
		OpenID:         po.OpenID,
		Balance:        po.Balance,
		Integral:       po.Integral,
		IsActive:       po.IsActive,
		FollowerCount:  po.FollowerCount,
		FollowingCount: po.FollowingCount,
		PostCount:      po.PostCount,
		Version:        po.Version,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	})
}

type AdminPO struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Username     string    `gorm:"size:32;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:100;not null"`
	Name         string    `gorm:"size:64"`
	IsSuper      bool      `gorm:"default:false"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (AdminPO) TableName() string {
	return "admins"
}

func FromAdminDomain(a *user.Admin) *AdminPO {
	return &AdminPO{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Name:         a.Name,
		IsSuper:      a.IsSuper,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (po *AdminPO) ToDomain() *user.Admin {
	return &user.Admin{
		ID:           po.ID,
		Username:     po.Username,
		PasswordHash: po.PasswordHash,
		Name:         po.Name,
		IsSuper:      po.IsSuper,
		IsActive:     po.IsActive,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}

type AddressPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;index;not null"`
	Receiver  string    `gorm:"size:64;not null"`
	Phone     string    `gorm:"size:20;not null"`
	Province  string    `gorm:"size:32"`
	City      string    `gorm:"size:32"`
	District  string    `gorm:"size:32"`
	Detail    string    `gorm:"size:255;not null"`
	IsDefault bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AddressPO) TableName() string {
	return "addresses"
}

func FromAddressDomain(a *user.Address) *AddressPO {
	return &AddressPO{
		ID:        a.ID,
		UserID:    a.UserID,
		Receiver:  a.Receiver,
		Phone:     a.Phone,
		Province:  a.Province,
		City:      a.City,
		District:  a.District,
		Detail:    a.Detail,
		IsDefault: a.IsDefault,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (po *AddressPO) ToDomain() *user.Address {
	return &user.Address{
		ID:        po.ID,
		UserID:    po.UserID,
		Receiver:  po.Receiver,
		Phone:     po.Phone,
		Province:  po.Province,
		City:      po.City,
		District:  po.District,
		Detail:    po.Detail,
		IsDefault: po.IsDefault,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
