package booking

import (
	"petcare/api/ctxutil"
	"petcare/api/middleware"
	"petcare/api/response"
	bookingapp "petcare/application/booking"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	bookingService *bookingapp.ApplicationService
}

func NewController(bookingService *bookingapp.ApplicationService) *Controller {
	return &Controller{bookingService: bookingService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	router.GET("/services", c.ListServiceItems)
	router.GET("/services/:id", c.GetServiceItem)
	router.GET("/staff", c.ListActiveStaff)

	orders := router.Group("/service-orders", auth.RequireUser())
	{
		orders.POST("", c.CreateOrder)
		orders.GET("", c.ListMyOrders)
		orders.GET("/:id", c.GetOrder)
		orders.POST("/:id/cancel", c.CancelOrder)
		orders.POST("/:id/pay", c.PayWithBalance)
	}

	admin := router.Group("/admin", auth.RequireAdmin())
	{
		admin.GET("/services", c.AdminListServiceItems)
		admin.POST("/services", c.CreateServiceItem)
		admin.PUT("/services/:id", c.UpdateServiceItem)
		admin.DELETE("/services/:id", c.DeleteServiceItem)

		admin.GET("/staff", c.AdminListStaff)
		admin.POST("/staff", c.CreateStaff)
		admin.PUT("/staff/:id", c.UpdateStaff)
		admin.DELETE("/staff/:id", c.DeleteStaff)

		admin.GET("/service-orders", c.ListOrders)
		admin.GET("/service-orders/:id", c.GetAnyOrder)
		admin.PUT("/service-orders/:id/status", c.UpdateStatus)
		admin.PUT("/service-orders/:id/staff", c.AssignStaff)
	}
}

func (c *Controller) listServiceItems(ctx *gin.Context, activeOnly bool) {
	var req bookingapp.ListServiceItemsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.bookingService.ListServiceItems(ctx.Request.Context(), req, activeOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Services retrieved")
}

func (c *Controller) ListServiceItems(ctx *gin.Context)      { c.listServiceItems(ctx, true) }
func (c *Controller) AdminListServiceItems(ctx *gin.Context) { c.listServiceItems(ctx, false) }

func (c *Controller) GetServiceItem(ctx *gin.Context) {
	res, err := c.bookingService.GetServiceItem(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Service retrieved")
}

func (c *Controller) CreateServiceItem(ctx *gin.Context) {
	var req bookingapp.ServiceItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.CreateServiceItem(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Service created")
}

func (c *Controller) UpdateServiceItem(ctx *gin.Context) {
	var req bookingapp.ServiceItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.UpdateServiceItem(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Service updated")
}

func (c *Controller) DeleteServiceItem(ctx *gin.Context) {
	if err := c.bookingService.DeleteServiceItem(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) listStaff(ctx *gin.Context, activeOnly bool) {
	page, err := c.bookingService.ListStaff(ctx.Request.Context(), activeOnly, ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Staff retrieved")
}

func (c *Controller) ListActiveStaff(ctx *gin.Context) { c.listStaff(ctx, true) }
func (c *Controller) AdminListStaff(ctx *gin.Context)  { c.listStaff(ctx, false) }

func (c *Controller) CreateStaff(ctx *gin.Context) {
	var req bookingapp.StaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.CreateStaff(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Staff created")
}

func (c *Controller) UpdateStaff(ctx *gin.Context) {
	var req bookingapp.StaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.UpdateStaff(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Staff updated")
}

func (c *Controller) DeleteStaff(ctx *gin.Context) {
	if err := c.bookingService.DeleteStaff(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req bookingapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.CreateOrder(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Service order created")
}

func (c *Controller) ListMyOrders(ctx *gin.Context) {
	var req bookingapp.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.bookingService.ListMyOrders(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Service orders retrieved")
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	res, err := c.bookingService.GetOrder(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Service order retrieved")
}

func (c *Controller) CancelOrder(ctx *gin.Context) {
	var req bookingapp.CancelOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.CancelOrder(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Service order cancelled")
}

func (c *Controller) PayWithBalance(ctx *gin.Context) {
	res, err := c.bookingService.PayWithBalance(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Service order paid")
}

func (c *Controller) ListOrders(ctx *gin.Context) {
	var req bookingapp.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.bookingService.ListOrders(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Service orders retrieved")
}

func (c *Controller) GetAnyOrder(ctx *gin.Context) {
	res, err := c.bookingService.GetAnyOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Service order retrieved")
}

func (c *Controller) UpdateStatus(ctx *gin.Context) {
	var req bookingapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Service order status updated")
}

func (c *Controller) AssignStaff(ctx *gin.Context) {
	var req bookingapp.AssignStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.bookingService.AssignStaff(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Staff assigned")
}
