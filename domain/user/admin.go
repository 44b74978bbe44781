package user

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

// Admin is a back-office account. Only super admins may create admins.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	IsSuper      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewAdmin(username, plainPassword, name string, isSuper bool) (*Admin, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = username
	}
	now := time.Now()
	return &Admin{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		IsSuper:      isSuper,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (a *Admin) VerifyPassword(plain string) bool {
	return CheckPassword(a.PasswordHash, plain)
}

// RequireSuper guards admin management.
func (a *Admin) RequireSuper() error {
	if !a.IsSuper {
		return shared.NewForbiddenError("admin", "super admin required")
	}
	return nil
}
