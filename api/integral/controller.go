package integral

import (
	"petcare/api/ctxutil"
	"petcare/api/middleware"
	"petcare/api/response"
	integralapp "petcare/application/integral"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	integralService *integralapp.ApplicationService
}

func NewController(integralService *integralapp.ApplicationService) *Controller {
	return &Controller{integralService: integralService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	router.GET("/integral/products", c.ListProducts)
	router.GET("/integral/products/:id", c.GetProduct)

	user := router.Group("/integral", auth.RequireUser())
	{
		user.GET("", c.GetSummary)
		user.GET("/records", c.ListRecords)
		user.POST("/sign-in", c.SignIn)
		user.POST("/orders", c.Redeem)
		user.GET("/orders", c.ListMyOrders)
		user.GET("/orders/:id", c.GetOrder)
		user.POST("/orders/:id/confirm", c.ConfirmReceipt)
	}

	admin := router.Group("/admin/integral", auth.RequireAdmin())
	{
		admin.GET("/products", c.AdminListProducts)
		admin.POST("/products", c.CreateProduct)
		admin.PUT("/products/:id", c.UpdateProduct)
		admin.DELETE("/products/:id", c.DeleteProduct)
		admin.GET("/orders", c.ListOrders)
		admin.PUT("/orders/:id/ship", c.ShipOrder)
	}
}

func (c *Controller) GetSummary(ctx *gin.Context) {
	res, err := c.integralService.GetSummary(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Integral retrieved")
}

func (c *Controller) ListRecords(ctx *gin.Context) {
	page, err := c.integralService.ListRecords(ctx.Request.Context(), middleware.UserID(ctx), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Records retrieved")
}

func (c *Controller) SignIn(ctx *gin.Context) {
	res, err := c.integralService.SignIn(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Signed in")
}

func (c *Controller) listProducts(ctx *gin.Context, activeOnly bool) {
	page, err := c.integralService.ListProducts(ctx.Request.Context(), activeOnly, ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Products retrieved")
}

func (c *Controller) ListProducts(ctx *gin.Context)      { c.listProducts(ctx, true) }
func (c *Controller) AdminListProducts(ctx *gin.Context) { c.listProducts(ctx, false) }

func (c *Controller) GetProduct(ctx *gin.Context) {
	res, err := c.integralService.GetProduct(ctx.Request.Context(), ctx.Param("id"), true)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Product retrieved")
}

func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req integralapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.integralService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Product created")
}

func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req integralapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.integralService.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Product updated")
}

func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.integralService.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) Redeem(ctx *gin.Context) {
	var req integralapp.RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.integralService.Redeem(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Redeemed")
}

func (c *Controller) ListMyOrders(ctx *gin.Context) {
	var req integralapp.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.integralService.ListMyOrders(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Orders retrieved")
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	res, err := c.integralService.GetOrder(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order retrieved")
}

func (c *Controller) ConfirmReceipt(ctx *gin.Context) {
	res, err := c.integralService.ConfirmReceipt(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order completed")
}

func (c *Controller) ListOrders(ctx *gin.Context) {
	var req integralapp.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.integralService.ListOrders(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Orders retrieved")
}

func (c *Controller) ShipOrder(ctx *gin.Context) {
	var req integralapp.ShipOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.integralService.ShipOrder(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order shipped")
}
