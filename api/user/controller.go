package user

import (
	"petcare/api/ctxutil"
	"petcare/api/middleware"
	"petcare/api/response"
	userapp "petcare/application/user"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	userService *userapp.ApplicationService
	loginLimit  gin.HandlerFunc
}

// NewController loginLimit 挂在登录注册接口上，可为 nil
func NewController(userService *userapp.ApplicationService, loginLimit gin.HandlerFunc) *Controller {
	if loginLimit == nil {
		loginLimit = func(c *gin.Context) { c.Next() }
	}
	return &Controller{userService: userService, loginLimit: loginLimit}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", c.loginLimit, c.Register)
		authGroup.POST("/login", c.loginLimit, c.Login)
		authGroup.POST("/admin/login", c.loginLimit, c.AdminLogin)
		authGroup.POST("/refresh", c.Refresh)
	}

	router.GET("/users/:id", c.GetPublicProfile)

	me := router.Group("/me", auth.RequireUser())
	{
		me.GET("", c.GetProfile)
		me.PUT("", c.UpdateProfile)
		me.PUT("/password", c.ChangePassword)
		me.PUT("/openid", c.BindOpenID)

		me.GET("/addresses", c.ListAddresses)
		me.POST("/addresses", c.CreateAddress)
		me.PUT("/addresses/:id", c.UpdateAddress)
		me.PUT("/addresses/:id/default", c.SetDefaultAddress)
		me.DELETE("/addresses/:id", c.DeleteAddress)
	}

	admin := router.Group("/admin", auth.RequireAdmin())
	{
		admin.GET("/me", c.GetAdmin)
		admin.GET("/users", c.ListUsers)
		admin.PUT("/users/:id/active", c.SetUserActive)
		admin.GET("/admins", auth.RequireSuper(), c.ListAdmins)
		admin.POST("/admins", auth.RequireSuper(), c.CreateAdmin)
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req userapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.Register(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Registered")
}

func (c *Controller) Login(ctx *gin.Context) {
	var req userapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.Login(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Logged in")
}

func (c *Controller) AdminLogin(ctx *gin.Context) {
	var req userapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.AdminLogin(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Logged in")
}

func (c *Controller) Refresh(ctx *gin.Context) {
	var req userapp.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	pair, err := c.userService.Refresh(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, pair, "Token refreshed")
}

func (c *Controller) GetPublicProfile(ctx *gin.Context) {
	res, err := c.userService.GetPublicProfile(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "User retrieved")
}

func (c *Controller) GetProfile(ctx *gin.Context) {
	res, err := c.userService.GetProfile(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Profile retrieved")
}

func (c *Controller) UpdateProfile(ctx *gin.Context) {
	var req userapp.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Profile updated")
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	var req userapp.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	if err := c.userService.ChangePassword(ctx.Request.Context(), middleware.UserID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "Password changed")
}

func (c *Controller) BindOpenID(ctx *gin.Context) {
	var req userapp.BindOpenIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	if err := c.userService.BindOpenID(ctx.Request.Context(), middleware.UserID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "OpenID bound")
}

func (c *Controller) ListAddresses(ctx *gin.Context) {
	res, err := c.userService.ListAddresses(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Addresses retrieved")
}

func (c *Controller) CreateAddress(ctx *gin.Context) {
	var req userapp.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.CreateAddress(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Address created")
}

func (c *Controller) UpdateAddress(ctx *gin.Context) {
	var req userapp.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.UpdateAddress(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Address updated")
}

func (c *Controller) SetDefaultAddress(ctx *gin.Context) {
	if err := c.userService.SetDefaultAddress(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "Default address set")
}

func (c *Controller) DeleteAddress(ctx *gin.Context) {
	if err := c.userService.DeleteAddress(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) GetAdmin(ctx *gin.Context) {
	res, err := c.userService.GetAdmin(ctx.Request.Context(), middleware.AdminID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Admin retrieved")
}

func (c *Controller) ListUsers(ctx *gin.Context) {
	var req userapp.ListUsersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.userService.ListUsers(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Users retrieved")
}

func (c *Controller) SetUserActive(ctx *gin.Context) {
	var req userapp.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.SetUserActive(ctx.Request.Context(), ctx.Param("id"), *req.Active)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "User status updated")
}

func (c *Controller) ListAdmins(ctx *gin.Context) {
	page, err := c.userService.ListAdmins(ctx.Request.Context(), middleware.AdminID(ctx), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Admins retrieved")
}

func (c *Controller) CreateAdmin(ctx *gin.Context) {
	var req userapp.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.userService.CreateAdmin(ctx.Request.Context(), middleware.AdminID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Admin created")
}
