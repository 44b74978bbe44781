package user

import (
	"context"
	"errors"

	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/pkg/logger"

	"go.uber.org/zap"
)

func (s *ApplicationService) ListUsers(ctx context.Context, req ListUsersRequest) (shared.Page[*ProfileResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	users, total, err := s.userRepo.List(ctx, user.ListFilter{Keyword: req.Keyword, IsActive: req.IsActive}, page)
	if err != nil {
		return shared.Page[*ProfileResponse]{}, err
	}
	return shared.MapPage(shared.Page[*user.User]{
		Items: users, Total: total, Page: page.Page, PageSize: page.PageSize,
	}, toProfileResponse), nil
}

// SetUserActive 启用/停用用户，停用后已签发的令牌在鉴权时失效
func (s *ApplicationService) SetUserActive(ctx context.Context, userID string, active bool) (*ProfileResponse, error) {
	var u *user.User
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if active {
			u.Activate()
		} else {
			u.Deactivate()
		}
		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterDirty(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("User status changed",
		zap.String("user_id", userID), zap.Bool("active", active))
	return toProfileResponse(u), nil
}

func (s *ApplicationService) GetAdmin(ctx context.Context, adminID string) (*AdminResponse, error) {
	a, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return toAdminResponse(a), nil
}

// CreateAdmin 仅超级管理员可创建管理员
func (s *ApplicationService) CreateAdmin(ctx context.Context, actorID string, req CreateAdminRequest) (*AdminResponse, error) {
	actor, err := s.adminRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireSuper(); err != nil {
		return nil, err
	}

	a, err := user.NewAdmin(req.Username, req.Password, req.Name, req.IsSuper)
	if err != nil {
		return nil, err
	}
	if err := s.adminRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Admin created",
		zap.String("admin_id", a.ID), zap.String("created_by", actorID))
	return toAdminResponse(a), nil
}

func (s *ApplicationService) ListAdmins(ctx context.Context, actorID string, page shared.PageQuery) (shared.Page[*AdminResponse], error) {
	actor, err := s.adminRepo.FindByID(ctx, actorID)
	if err != nil {
		return shared.Page[*AdminResponse]{}, err
	}
	if err := actor.RequireSuper(); err != nil {
		return shared.Page[*AdminResponse]{}, err
	}
	admins, total, err := s.adminRepo.List(ctx, page)
	if err != nil {
		return shared.Page[*AdminResponse]{}, err
	}
	return shared.MapPage(shared.Page[*user.Admin]{
		Items: admins, Total: total, Page: page.Page, PageSize: page.PageSize,
	}, toAdminResponse), nil
}

// EnsureSuperAdmin 启动时在管理员表为空的情况下创建初始超级管理员
func (s *ApplicationService) EnsureSuperAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	a, err := user.NewAdmin(username, password, "", true)
	if err != nil {
		return false, err
	}
	if err := s.adminRepo.Save(ctx, a); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	logger.FromContext(ctx).Info("Bootstrap super admin created", zap.String("username", a.Username))
	return true, nil
}
