package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcare/config"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence"
	"petcare/pkg/logger"
	"petcare/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAccounts struct {
	users  map[string]*user.User
	admins map[string]*user.Admin
}

func (f *fakeAccounts) ResolveUser(_ context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, shared.NewUnauthorizedError("user", "account unavailable")
}

func (f *fakeAccounts) ResolveAdmin(_ context.Context, id string) (*user.Admin, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, shared.NewUnauthorizedError("admin", "account unavailable")
}

type authFixture struct {
	engine *gin.Engine
	tokens *token.Manager
	user   *user.User
	admin  *user.Admin
	super  *user.Admin
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	u, err := user.NewUser("alice", "hash", "")
	require.NoError(t, err)
	admin, err := user.NewAdmin("ops", "secret123", "", false)
	require.NoError(t, err)
	super, err := user.NewAdmin("root", "secret123", "", true)
	require.NoError(t, err)

	tokens := token.NewManager(config.JWTConfig{Secret: "s", Issuer: "petcare", AccessTTL: time.Hour, RefreshTTL: time.Hour})
	auth := NewAuth(tokens, &fakeAccounts{
		users:  map[string]*user.User{u.ID(): u},
		admins: map[string]*user.Admin{admin.ID: admin, super.ID: super},
	})

	r := gin.New()
	r.GET("/me", auth.RequireUser(), func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })
	r.GET("/maybe", auth.OptionalUser(), func(c *gin.Context) { c.String(http.StatusOK, "viewer="+UserID(c)) })
	r.GET("/admin", auth.RequireAdmin(), func(c *gin.Context) { c.String(http.StatusOK, AdminID(c)) })
	r.GET("/super", auth.RequireAdmin(), auth.RequireSuper(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/actor/user", auth.RequireUser(), func(c *gin.Context) {
		c.String(http.StatusOK, persistence.ActorFromContext(c.Request.Context()))
	})
	r.GET("/actor/admin", auth.RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, persistence.ActorFromContext(c.Request.Context()))
	})

	return &authFixture{engine: r, tokens: tokens, user: u, admin: admin, super: super}
}

func (f *authFixture) do(t *testing.T, path string, kind token.Kind, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if id != "" {
		pair, err := f.tokens.Issue(kind, id)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRequireUser(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, "/me", token.KindUser, f.user.ID())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.user.ID(), w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", token.KindAdmin, f.admin.ID).Code, "admin token on user route")
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", token.KindUser, "ghost").Code)
}

func TestAuthTagsRequestContextWithActor(t *testing.T) {
	f := newAuthFixture(t)

	assert.Equal(t, "user:"+f.user.ID(), f.do(t, "/actor/user", token.KindUser, f.user.ID()).Body.String())
	assert.Equal(t, "admin:"+f.admin.ID, f.do(t, "/actor/admin", token.KindAdmin, f.admin.ID).Body.String())
}

func TestOptionalUser_IgnoresBadTokens(t *testing.T) {
	f := newAuthFixture(t)

	assert.Equal(t, "viewer=", f.do(t, "/maybe", "", "").Body.String())
	assert.Equal(t, "viewer="+f.user.ID(), f.do(t, "/maybe", token.KindUser, f.user.ID()).Body.String())

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "viewer=", w.Body.String())
}

func TestRequireAdminAndSuper(t *testing.T) {
	f := newAuthFixture(t)

	assert.Equal(t, http.StatusOK, f.do(t, "/admin", token.KindAdmin, f.admin.ID).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/admin", token.KindUser, f.user.ID()).Code)

	assert.Equal(t, http.StatusForbidden, f.do(t, "/super", token.KindAdmin, f.admin.ID).Code)
	assert.Equal(t, http.StatusOK, f.do(t, "/super", token.KindAdmin, f.super.ID).Code)
}

type countingLimiter struct {
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

func TestLoginLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginLimit(&countingLimiter{counts: map[string]int{}}, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLoginLimit_FailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.WarnLevel)
	defer logger.Replace(zap.New(core))()

	r := gin.New()
	r.POST("/login", LoginLimit(&countingLimiter{err: errors.New("redis down")}, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("Login limiter unavailable").Len())
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
