package mall

import (
	"petcare/api/middleware"
	"petcare/api/response"
	mallapp "petcare/application/mall"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	mallService *mallapp.ApplicationService
}

func NewController(mallService *mallapp.ApplicationService) *Controller {
	return &Controller{mallService: mallService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	mall := router.Group("/mall")
	{
		mall.GET("/categories", c.ListCategories)
		mall.GET("/products", c.ListProducts)
		mall.GET("/products/:id", c.GetProduct)
	}

	user := router.Group("/mall", auth.RequireUser())
	{
		user.GET("/cart", c.ListCart)
		user.POST("/cart", c.AddToCart)
		user.PUT("/cart/:id", c.UpdateCartItem)
		user.DELETE("/cart/:id", c.RemoveCartItem)

		user.POST("/orders", c.CreateOrder)
		user.GET("/orders", c.ListMyOrders)
		user.GET("/orders/:id", c.GetOrder)
		user.POST("/orders/:id/cancel", c.CancelOrder)
		user.POST("/orders/:id/pay", c.PayWithBalance)
		user.POST("/orders/:id/confirm", c.ConfirmReceipt)
	}

	admin := router.Group("/admin/mall", auth.RequireAdmin())
	{
		admin.GET("/categories", c.AdminListCategories)
		admin.POST("/categories", c.CreateCategory)
		admin.PUT("/categories/:id", c.UpdateCategory)
		admin.DELETE("/categories/:id", c.DeleteCategory)

		admin.GET("/products", c.AdminListProducts)
		admin.GET("/products/:id", c.AdminGetProduct)
		admin.POST("/products", c.CreateProduct)
		admin.PUT("/products/:id", c.UpdateProduct)
		admin.DELETE("/products/:id", c.DeleteProduct)
		admin.POST("/products/:id/skus", c.CreateSKU)
		admin.PUT("/skus/:id", c.UpdateSKU)
		admin.DELETE("/skus/:id", c.DeleteSKU)

		admin.GET("/orders", c.ListOrders)
		admin.GET("/orders/:id", c.GetAnyOrder)
		admin.PUT("/orders/:id/ship", c.ShipOrder)
	}
}

// ==================== 类目 ====================

func (c *Controller) listCategories(ctx *gin.Context, activeOnly bool) {
	res, err := c.mallService.ListCategories(ctx.Request.Context(), activeOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Categories retrieved")
}

func (c *Controller) ListCategories(ctx *gin.Context)      { c.listCategories(ctx, true) }
func (c *Controller) AdminListCategories(ctx *gin.Context) { c.listCategories(ctx, false) }

func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req mallapp.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.CreateCategory(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Category created")
}

func (c *Controller) UpdateCategory(ctx *gin.Context) {
	var req mallapp.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.UpdateCategory(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Category updated")
}

func (c *Controller) DeleteCategory(ctx *gin.Context) {
	if err := c.mallService.DeleteCategory(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ==================== 商品 ====================

func (c *Controller) listProducts(ctx *gin.Context, onSaleOnly bool) {
	var req mallapp.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.mallService.ListProducts(ctx.Request.Context(), req, onSaleOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Products retrieved")
}

func (c *Controller) ListProducts(ctx *gin.Context)      { c.listProducts(ctx, true) }
func (c *Controller) AdminListProducts(ctx *gin.Context) { c.listProducts(ctx, false) }

func (c *Controller) getProduct(ctx *gin.Context, onSaleOnly bool) {
	res, err := c.mallService.GetProduct(ctx.Request.Context(), ctx.Param("id"), onSaleOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Product retrieved")
}

func (c *Controller) GetProduct(ctx *gin.Context)      { c.getProduct(ctx, true) }
func (c *Controller) AdminGetProduct(ctx *gin.Context) { c.getProduct(ctx, false) }

func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req mallapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Product created")
}

func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req mallapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Product updated")
}

func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.mallService.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) CreateSKU(ctx *gin.Context) {
	var req mallapp.SKURequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.CreateSKU(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "SKU created")
}

func (c *Controller) UpdateSKU(ctx *gin.Context) {
	var req mallapp.SKURequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.UpdateSKU(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "SKU updated")
}

func (c *Controller) DeleteSKU(ctx *gin.Context) {
	if err := c.mallService.DeleteSKU(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ==================== 购物车 ====================

func (c *Controller) ListCart(ctx *gin.Context) {
	res, err := c.mallService.ListCart(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Cart retrieved")
}

func (c *Controller) AddToCart(ctx *gin.Context) {
	var req mallapp.AddCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	if err := c.mallService.AddToCart(ctx.Request.Context(), middleware.UserID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) UpdateCartItem(ctx *gin.Context) {
	var req mallapp.UpdateCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	if err := c.mallService.UpdateCartItem(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) RemoveCartItem(ctx *gin.Context) {
	if err := c.mallService.RemoveCartItem(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ==================== 订单 ====================

func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req mallapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.CreateOrder(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Order created")
}

func (c *Controller) ListMyOrders(ctx *gin.Context) {
	var req mallapp.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.mallService.ListMyOrders(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Orders retrieved")
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	res, err := c.mallService.GetOrder(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order retrieved")
}

func (c *Controller) CancelOrder(ctx *gin.Context) {
	var req mallapp.CancelOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.CancelOrder(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order cancelled")
}

func (c *Controller) PayWithBalance(ctx *gin.Context) {
	res, err := c.mallService.PayWithBalance(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order paid")
}

func (c *Controller) ConfirmReceipt(ctx *gin.Context) {
	res, err := c.mallService.ConfirmReceipt(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order completed")
}

func (c *Controller) ListOrders(ctx *gin.Context) {
	var req mallapp.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.mallService.ListOrders(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Orders retrieved")
}

func (c *Controller) GetAnyOrder(ctx *gin.Context) {
	res, err := c.mallService.GetAnyOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order retrieved")
}

func (c *Controller) ShipOrder(ctx *gin.Context) {
	var req mallapp.ShipOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.mallService.ShipOrder(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Order shipped")
}
