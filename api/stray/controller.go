package stray

import (
	"petcare/api/ctxutil"
	"petcare/api/middleware"
	"petcare/api/response"
	strayapp "petcare/application/stray"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	strayService *strayapp.ApplicationService
}

func NewController(strayService *strayapp.ApplicationService) *Controller {
	return &Controller{strayService: strayService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	public := router.Group("/strays", auth.OptionalUser())
	{
		public.GET("", c.List)
		public.GET("/nearby", c.Nearby)
		public.GET("/:id", c.Get)
		public.GET("/:id/interactions", c.ListInteractions)
	}

	user := router.Group("/strays", auth.RequireUser())
	{
		user.POST("", c.Create)
		user.PUT("/:id", c.Update)
		user.DELETE("/:id", c.Delete)
		user.POST("/:id/interactions", c.AddInteraction)
	}
	router.GET("/me/strays", auth.RequireUser(), c.ListMine)

	admin := router.Group("/admin/strays", auth.RequireAdmin())
	{
		admin.GET("", c.AdminList)
		admin.PUT("/:id/review", c.Review)
		admin.PUT("/:id/rescue", c.UpdateRescueStatus)
		admin.DELETE("/:id", c.AdminDelete)
	}
}

func (c *Controller) bindList(ctx *gin.Context) (strayapp.ListStraysRequest, bool) {
	var req strayapp.ListStraysRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return req, false
	}
	return req, true
}

func (c *Controller) List(ctx *gin.Context) {
	req, ok := c.bindList(ctx)
	if !ok {
		return
	}
	page, err := c.strayService.List(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Strays retrieved")
}

func (c *Controller) ListMine(ctx *gin.Context) {
	req, ok := c.bindList(ctx)
	if !ok {
		return
	}
	page, err := c.strayService.ListMine(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Strays retrieved")
}

func (c *Controller) AdminList(ctx *gin.Context) {
	req, ok := c.bindList(ctx)
	if !ok {
		return
	}
	page, err := c.strayService.AdminList(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Strays retrieved")
}

func (c *Controller) Nearby(ctx *gin.Context) {
	var req strayapp.NearbyRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.strayService.Nearby(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Nearby strays retrieved")
}

func (c *Controller) Get(ctx *gin.Context) {
	res, err := c.strayService.Get(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Stray retrieved")
}

func (c *Controller) Create(ctx *gin.Context) {
	var req strayapp.StrayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.strayService.Create(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Stray reported")
}

func (c *Controller) Update(ctx *gin.Context) {
	var req strayapp.StrayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.strayService.Update(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Stray updated")
}

func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.strayService.Delete(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) AdminDelete(ctx *gin.Context) {
	if err := c.strayService.Delete(ctx.Request.Context(), "", ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) Review(ctx *gin.Context) {
	var req strayapp.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.strayService.Review(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Stray reviewed")
}

func (c *Controller) UpdateRescueStatus(ctx *gin.Context) {
	var req strayapp.RescueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.strayService.UpdateRescueStatus(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Rescue status updated")
}

func (c *Controller) AddInteraction(ctx *gin.Context) {
	var req strayapp.InteractionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.strayService.AddInteraction(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Interaction added")
}

func (c *Controller) ListInteractions(ctx *gin.Context) {
	page, err := c.strayService.ListInteractions(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Interactions retrieved")
}
