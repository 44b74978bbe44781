/*
Package user 账号相关的应用服务：注册登录、令牌刷新、个人资料、
收货地址以及管理端的用户与管理员维护。
*/
package user

import (
	"context"
	"errors"

	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/pkg/logger"
	"petcare/pkg/token"

	"go.uber.org/zap"
)

// ApplicationService 账号应用服务
type ApplicationService struct {
	userRepo    user.Repository
	adminRepo   user.AdminRepository
	addressRepo user.AddressRepository
	tokens      *token.Manager
	uowFactory  shared.UnitOfWorkFactory
}

func NewApplicationService(
	userRepo user.Repository,
	adminRepo user.AdminRepository,
	addressRepo user.AddressRepository,
	tokens *token.Manager,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		addressRepo: addressRepo,
		tokens:      tokens,
		uowFactory:  uowFactory,
	}
}

func invalidCredentials() error {
	return shared.NewUnauthorizedError("account", "invalid username or password")
}

// Register 创建账号并直接签发令牌；user.registered 事件随事务写入 outbox
func (s *ApplicationService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u, err := user.NewUser(req.Username, hash, req.Nickname)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterNew(u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(token.KindUser, u.ID())
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("User registered", zap.String("user_id", u.ID()))
	return &AuthResponse{Token: pair, User: toProfileResponse(u)}, nil
}

func (s *ApplicationService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !u.VerifyPassword(req.Password) {
		return nil, invalidCredentials()
	}
	if !u.IsActive() {
		return nil, shared.NewAccountDisabledError("user")
	}

	pair, err := s.tokens.Issue(token.KindUser, u.ID())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: pair, User: toProfileResponse(u)}, nil
}

func (s *ApplicationService) AdminLogin(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	a, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !a.VerifyPassword(req.Password) {
		return nil, invalidCredentials()
	}
	if !a.IsActive {
		return nil, shared.NewAccountDisabledError("admin")
	}

	pair, err := s.tokens.Issue(token.KindAdmin, a.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: pair, Admin: toAdminResponse(a)}, nil
}

// Refresh 用 refresh token 换新令牌对，账号必须仍然存在且可用
func (s *ApplicationService) Refresh(ctx context.Context, req RefreshRequest) (*token.Pair, error) {
	claims, err := s.tokens.Parse(req.RefreshToken)
	if err != nil {
		return nil, shared.NewUnauthorizedError("token", "invalid refresh token")
	}
	if claims.Subject != token.SubjectRefresh {
		return nil, shared.NewUnauthorizedError("token", "refresh token required")
	}

	switch claims.Kind {
	case token.KindAdmin:
		if _, err := s.ResolveAdmin(ctx, claims.AccountID); err != nil {
			return nil, err
		}
	default:
		if _, err := s.ResolveUser(ctx, claims.AccountID); err != nil {
			return nil, err
		}
	}

	_, pair, err := s.tokens.Refresh(req.RefreshToken)
	if err != nil {
		return nil, shared.NewUnauthorizedError("token", "invalid refresh token")
	}
	return pair, nil
}

// ResolveUser 鉴权中间件用：未知或停用账号一律按未授权处理
func (s *ApplicationService) ResolveUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewUnauthorizedError("user", "account no longer exists")
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, shared.NewUnauthorizedError("user", "account is disabled")
	}
	return u, nil
}

func (s *ApplicationService) ResolveAdmin(ctx context.Context, id string) (*user.Admin, error) {
	a, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewUnauthorizedError("admin", "account no longer exists")
		}
		return nil, err
	}
	if !a.IsActive {
		return nil, shared.NewUnauthorizedError("admin", "account is disabled")
	}
	return a, nil
}

func (s *ApplicationService) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(u), nil
}

func (s *ApplicationService) GetPublicProfile(ctx context.Context, userID string) (*PublicProfileResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, user.NewUserNotFoundError()
	}
	return toPublicProfileResponse(u), nil
}

func (s *ApplicationService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*ProfileResponse, error) {
	var u *user.User
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := u.UpdateProfile(toProfileUpdate(req)); err != nil {
			return err
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
	return toProfileResponse(u), nil
}

func (s *ApplicationService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := u.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
			return err
		}
		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterDirty(u)
		return nil
	})
}

// BindOpenID 绑定微信 openid，之后支付走 JSAPI
func (s *ApplicationService) BindOpenID(ctx context.Context, userID string, req BindOpenIDRequest) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		u.BindOpenID(req.OpenID)
		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterDirty(u)
		return nil
	})
}
