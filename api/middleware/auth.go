package middleware

import (
	"context"
	"strings"

	"petcare/api/response"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence"
	"petcare/pkg/token"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID  = "auth_user_id"
	ctxAdminID = "auth_admin_id"
	ctxIsSuper = "auth_is_super"
)

// AccountResolver 根据令牌里的 id 取回账号，停用或不存在时返回未授权错误
type AccountResolver interface {
	ResolveUser(ctx context.Context, id string) (*user.User, error)
	ResolveAdmin(ctx context.Context, id string) (*user.Admin, error)
}

type Auth struct {
	tokens   *token.Manager
	accounts AccountResolver
}

func NewAuth(tokens *token.Manager, accounts AccountResolver) *Auth {
	return &Auth{tokens: tokens, accounts: accounts}
}

func bearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *gin.Context, reason string) {
	response.HandleAppError(c, shared.NewUnauthorizedError("token", reason))
	c.Abort()
}

// RequireUser 普通用户访问令牌
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c)
		if raw == "" {
			unauthorized(c, "missing bearer token")
			return
		}
		claims, err := a.tokens.ParseAccess(raw, token.KindUser)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}
		u, err := a.accounts.ResolveUser(c.Request.Context(), claims.AccountID)
		if err != nil {
			response.HandleAppError(c, err)
			c.Abort()
			return
		}
		setUser(c, u.ID())
		c.Next()
	}
}

// setUser 同时把账号写入请求 context，SQL 与业务日志据此打 actor 标签
func setUser(c *gin.Context, id string) {
	c.Set(ctxUserID, id)
	c.Request = c.Request.WithContext(persistence.ContextWithActor(c.Request.Context(), "user:"+id))
}

// OptionalUser 带了合法用户令牌就识别身份，否则按游客处理
func (a *Auth) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearer(c); raw != "" {
			if claims, err := a.tokens.ParseAccess(raw, token.KindUser); err == nil {
				if u, err := a.accounts.ResolveUser(c.Request.Context(), claims.AccountID); err == nil {
					setUser(c, u.ID())
				}
			}
		}
		c.Next()
	}
}

func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c)
		if raw == "" {
			unauthorized(c, "missing bearer token")
			return
		}
		claims, err := a.tokens.ParseAccess(raw, token.KindAdmin)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}
		admin, err := a.accounts.ResolveAdmin(c.Request.Context(), claims.AccountID)
		if err != nil {
			response.HandleAppError(c, err)
			c.Abort()
			return
		}
		c.Set(ctxAdminID, admin.ID)
		c.Set(ctxIsSuper, admin.IsSuper)
		c.Request = c.Request.WithContext(persistence.ContextWithActor(c.Request.Context(), "admin:"+admin.ID))
		c.Next()
	}
}

// RequireSuper 必须放在 RequireAdmin 之后
func (a *Auth) RequireSuper() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxIsSuper) {
			response.HandleAppError(c, shared.NewForbiddenError("admin", "super admin required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID 未登录时返回空串
func UserID(c *gin.Context) string { return c.GetString(ctxUserID) }

func AdminID(c *gin.Context) string { return c.GetString(ctxAdminID) }
