package feedback

import (
	"petcare/api/middleware"
	"petcare/api/response"
	feedbackapp "petcare/application/feedback"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	feedbackService *feedbackapp.ApplicationService
}

func NewController(feedbackService *feedbackapp.ApplicationService) *Controller {
	return &Controller{feedbackService: feedbackService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	user := router.Group("/feedback", auth.RequireUser())
	{
		user.POST("", c.Create)
		user.GET("", c.ListMine)
		user.GET("/:id", c.GetMine)
	}

	admin := router.Group("/admin/feedback", auth.RequireAdmin())
	{
		admin.GET("", c.List)
		admin.GET("/:id", c.Get)
		admin.PUT("/:id/processing", c.MarkProcessing)
		admin.PUT("/:id/reply", c.Reply)
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req feedbackapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.feedbackService.Create(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Feedback submitted")
}

func (c *Controller) ListMine(ctx *gin.Context) {
	var req feedbackapp.ListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.feedbackService.ListMine(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Feedback retrieved")
}

func (c *Controller) GetMine(ctx *gin.Context) {
	res, err := c.feedbackService.Get(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Feedback retrieved")
}

func (c *Controller) List(ctx *gin.Context) {
	var req feedbackapp.ListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.feedbackService.List(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Feedback retrieved")
}

func (c *Controller) Get(ctx *gin.Context) {
	res, err := c.feedbackService.Get(ctx.Request.Context(), "", ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Feedback retrieved")
}

func (c *Controller) MarkProcessing(ctx *gin.Context) {
	res, err := c.feedbackService.MarkProcessing(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Feedback is being processed")
}

func (c *Controller) Reply(ctx *gin.Context) {
	var req feedbackapp.ReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.feedbackService.Reply(ctx.Request.Context(), middleware.AdminID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Feedback replied")
}
