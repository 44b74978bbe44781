package wallet

import (
	"petcare/api/middleware"
	"petcare/api/response"
	walletapp "petcare/application/wallet"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	walletService *walletapp.ApplicationService
}

func NewController(walletService *walletapp.ApplicationService) *Controller {
	return &Controller{walletService: walletService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	wallet := router.Group("/wallet", auth.RequireUser())
	{
		wallet.GET("", c.GetBalance)
		wallet.GET("/bills", c.ListMine)
		wallet.GET("/bills/:id", c.GetMine)
	}
	router.GET("/admin/bills", auth.RequireAdmin(), c.List)
}

func (c *Controller) GetBalance(ctx *gin.Context) {
	res, err := c.walletService.GetBalance(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Balance retrieved")
}

func (c *Controller) ListMine(ctx *gin.Context) {
	var req walletapp.ListBillsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.walletService.ListMine(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Bills retrieved")
}

func (c *Controller) GetMine(ctx *gin.Context) {
	res, err := c.walletService.GetMine(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Bill retrieved")
}

func (c *Controller) List(ctx *gin.Context) {
	var req walletapp.ListBillsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.walletService.List(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Bills retrieved")
}
