package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare/config"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"
	"petcare/infrastructure/persistence/mysql/po"
	"petcare/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*ApplicationService, *gorm.DB) {
	t.Helper()
	db := mysqltest.NewDB(t)
	tokens := token.NewManager(config.JWTConfig{Secret: "test-secret", Issuer: "petcare", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})
	svc := NewApplicationService(
		mysql.NewUserRepository(db),
		mysql.NewAdminRepository(db),
		mysql.NewAddressRepository(db),
		tokens,
		mysqltest.NewUnitOfWorkFactory(db),
	)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Nickname)
	assert.NotEmpty(t, resp.Token.AccessToken)

	var events int64
	require.NoError(t, db.Model(&po.OutboxEventPO{}).Where("event_type = ?", "user.registered").Count(&events).Error)
	assert.Equal(t, int64(1), events)

	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	assert.True(t, errors.Is(err, shared.ErrConflict))

	login, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	_, err = svc.Login(ctx, LoginRequest{Username: "nobody", Password: "secret123"})
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	u := mysqltest.SeedUser(t, db, "bob", 0)

	_, err := svc.SetUserActive(ctx, u.ID(), false)
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Username: "bob", Password: "secret123"})
	assert.True(t, errors.Is(err, shared.ErrAccountDisabled))

	_, err = svc.ResolveUser(ctx, u.ID())
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestRefresh(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	mysqltest.SeedUser(t, db, "carol", 0)

	login, err := svc.Login(ctx, LoginRequest{Username: "carol", Password: "secret123"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: login.Token.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.Token.AccessToken})
	assert.True(t, errors.Is(err, shared.ErrUnauthorized), "access token cannot refresh")

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: "garbage"})
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestAdminLoginAndCreateAdmin(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	root := mysqltest.SeedAdmin(t, db, "root", true)

	resp, err := svc.AdminLogin(ctx, LoginRequest{Username: "root", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, resp.Admin.IsSuper)

	created, err := svc.CreateAdmin(ctx, root.ID, CreateAdminRequest{Username: "ops", Password: "secret123"})
	require.NoError(t, err)
	assert.False(t, created.IsSuper)

	_, err = svc.CreateAdmin(ctx, created.ID, CreateAdminRequest{Username: "ops2", Password: "secret123"})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	_, err = svc.CreateAdmin(ctx, root.ID, CreateAdminRequest{Username: "ops", Password: "secret123"})
	assert.True(t, errors.Is(err, shared.ErrConflict))

	// a user password never logs into the admin table
	mysqltest.SeedUser(t, db, "dave", 0)
	_, err = svc.AdminLogin(ctx, LoginRequest{Username: "dave", Password: "secret123"})
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestEnsureSuperAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureSuperAdmin(ctx, "root", "secret123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureSuperAdmin(ctx, "other", "secret123")
	require.NoError(t, err)
	assert.False(t, created, "only bootstraps an empty admin table")

	created, err = svc.EnsureSuperAdmin(ctx, "root", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestProfile(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	u := mysqltest.SeedUser(t, db, "erin", 0)

	nickname, gender, phone := "Erin", "female", "13800138000"
	profile, err := svc.UpdateProfile(ctx, u.ID(), UpdateProfileRequest{Nickname: &nickname, Gender: &gender, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Erin", profile.Nickname)
	assert.Equal(t, "female", profile.Gender)

	bad := "12345"
	_, err = svc.UpdateProfile(ctx, u.ID(), UpdateProfileRequest{Phone: &bad})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	public, err := svc.GetPublicProfile(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "Erin", public.Nickname)

	require.NoError(t, svc.BindOpenID(ctx, u.ID(), BindOpenIDRequest{OpenID: "o-erin"}))
	me, err := svc.GetProfile(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, me.OpenIDBound)
}

func TestChangePassword(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	u := mysqltest.SeedUser(t, db, "frank", 0)

	err := svc.ChangePassword(ctx, u.ID(), ChangePasswordRequest{OldPassword: "nope123", NewPassword: "newpass1"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	require.NoError(t, svc.ChangePassword(ctx, u.ID(), ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newpass1"}))
	_, err = svc.Login(ctx, LoginRequest{Username: "frank", Password: "newpass1"})
	assert.NoError(t, err)
}

func TestAddresses_DefaultHandling(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	u := mysqltest.SeedUser(t, db, "gina", 0)
	other := mysqltest.SeedUser(t, db, "hank", 0)

	req := AddressRequest{Receiver: "Gina", Phone: "13800138000", City: "Hangzhou", Detail: "1 West Lake Rd"}
	first, err := svc.CreateAddress(ctx, u.ID(), req)
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first address becomes default")

	req.IsDefault = true
	second, err := svc.CreateAddress(ctx, u.ID(), req)
	require.NoError(t, err)

	list, err := svc.ListAddresses(ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.False(t, list[1].IsDefault)

	require.NoError(t, svc.SetDefaultAddress(ctx, u.ID(), first.ID))
	_, err = svc.UpdateAddress(ctx, other.ID(), first.ID, req)
	assert.True(t, errors.Is(err, shared.ErrNotFound), "another user's address is hidden")

	require.NoError(t, svc.DeleteAddress(ctx, u.ID(), first.ID))
	list, err = svc.ListAddresses(ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault, "remaining address promoted")
}

func TestListUsers(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	mysqltest.SeedUser(t, db, "ivan", 0)
	mysqltest.SeedUser(t, db, "ivy", 0)
	mysqltest.SeedUser(t, db, "jack", 0)

	page, err := svc.ListUsers(ctx, ListUsersRequest{Keyword: "iv"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, shared.DefaultPageSize, page.PageSize)
}
