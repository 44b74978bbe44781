package payment

import (
	"io"
	"net/http"

	"petcare/api/middleware"
	"petcare/api/response"
	paymentapp "petcare/application/payment"

	"github.com/gin-gonic/gin"
)

// maxNotifyBody 回调报文上限
const maxNotifyBody = 64 << 10

type Controller struct {
	paymentService *paymentapp.ApplicationService
}

func NewController(paymentService *paymentapp.ApplicationService) *Controller {
	return &Controller{paymentService: paymentService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	router.POST("/payments/wechat/notify", c.Notify)

	payments := router.Group("/payments", auth.RequireUser())
	{
		payments.POST("/wechat", c.Create)
		payments.GET("/:out_trade_no", c.Query)
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req paymentapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.paymentService.Create(ctx.Request.Context(), middleware.UserID(ctx), ctx.ClientIP(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Payment created")
}

// Notify 微信回调，始终以 XML 应答
func (c *Controller) Notify(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxNotifyBody))
	if err != nil {
		ctx.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(`<xml><return_code><![CDATA[FAIL]]></return_code></xml>`))
		return
	}
	ack := c.paymentService.HandleNotify(ctx.Request.Context(), body)
	ctx.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(ack))
}

func (c *Controller) Query(ctx *gin.Context) {
	res, err := c.paymentService.Query(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("out_trade_no"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Payment retrieved")
}
