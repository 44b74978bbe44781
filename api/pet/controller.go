package pet

import (
	"petcare/api/ctxutil"
	"petcare/api/middleware"
	"petcare/api/response"
	petapp "petcare/application/pet"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	petService *petapp.ApplicationService
}

func NewController(petService *petapp.ApplicationService) *Controller {
	return &Controller{petService: petService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	pets := router.Group("/pets", auth.RequireUser())
	{
		pets.GET("", c.ListMine)
		pets.POST("", c.Create)
		pets.GET("/:id", c.Get)
		pets.PUT("/:id", c.Update)
		pets.DELETE("/:id", c.Delete)
	}
	router.GET("/admin/pets", auth.RequireAdmin(), c.List)
}

func (c *Controller) ListMine(ctx *gin.Context) {
	page, err := c.petService.ListMine(ctx.Request.Context(), middleware.UserID(ctx), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Pets retrieved")
}

func (c *Controller) Create(ctx *gin.Context) {
	var req petapp.PetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.petService.Create(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Pet created")
}

func (c *Controller) Get(ctx *gin.Context) {
	res, err := c.petService.Get(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Pet retrieved")
}

func (c *Controller) Update(ctx *gin.Context) {
	var req petapp.PetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.petService.Update(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Pet updated")
}

func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.petService.Delete(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) List(ctx *gin.Context) {
	var req petapp.ListPetsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.petService.List(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Pets retrieved")
}
