package attach

import (
	"petcare/api/ctxutil"
	"petcare/api/middleware"
	"petcare/api/response"
	attachapp "petcare/application/attach"
	apperrors "petcare/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	attachService *attachapp.ApplicationService
}

func NewController(attachService *attachapp.ApplicationService) *Controller {
	return &Controller{attachService: attachService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	router.GET("/banners", c.ListLiveBanners)
	router.POST("/upload", auth.RequireUser(), c.Upload)
	router.POST("/admin/upload", auth.RequireAdmin(), c.AdminUpload)

	admin := router.Group("/admin/banners", auth.RequireAdmin())
	{
		admin.GET("", c.ListBanners)
		admin.POST("", c.CreateBanner)
		admin.PUT("/:id", c.UpdateBanner)
		admin.DELETE("/:id", c.DeleteBanner)
	}
}

func (c *Controller) ListLiveBanners(ctx *gin.Context) {
	res, err := c.attachService.ListLiveBanners(ctx.Request.Context(), ctx.Query("position"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Banners retrieved")
}

func (c *Controller) ListBanners(ctx *gin.Context) {
	page, err := c.attachService.ListBanners(ctx.Request.Context(), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Banners retrieved")
}

func (c *Controller) CreateBanner(ctx *gin.Context) {
	var req attachapp.BannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.attachService.CreateBanner(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Banner created")
}

func (c *Controller) UpdateBanner(ctx *gin.Context) {
	var req attachapp.BannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.attachService.UpdateBanner(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Banner updated")
}

func (c *Controller) DeleteBanner(ctx *gin.Context) {
	if err := c.attachService.DeleteBanner(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) Upload(ctx *gin.Context) {
	c.upload(ctx, middleware.UserID(ctx))
}

func (c *Controller) AdminUpload(ctx *gin.Context) {
	c.upload(ctx, "admin:"+middleware.AdminID(ctx))
}

// upload 读取 multipart 的 file 字段
func (c *Controller) upload(ctx *gin.Context, uploader string) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		response.HandleAppError(ctx, apperrors.BadRequest("file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.HandleAppError(ctx, apperrors.Wrap(err, apperrors.CodeInternal, "open upload"))
		return
	}
	defer f.Close()

	res, err := c.attachService.UploadImage(ctx.Request.Context(), uploader, fh.Filename, f)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Uploaded")
}
