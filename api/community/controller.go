package community

import (
	"petcare/api/ctxutil"
	"petcare/api/middleware"
	"petcare/api/response"
	communityapp "petcare/application/community"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	communityService *communityapp.ApplicationService
}

func NewController(communityService *communityapp.ApplicationService) *Controller {
	return &Controller{communityService: communityService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	public := router.Group("", auth.OptionalUser())
	{
		public.GET("/topics", c.ListTopics)
		public.GET("/topics/:id", c.GetTopic)
		public.GET("/posts", c.ListPosts)
		public.GET("/posts/:id", c.GetPost)
		public.GET("/posts/:id/comments", c.ListComments)
		public.GET("/users/:id/followers", c.ListFollowers)
		public.GET("/users/:id/following", c.ListFollowing)
	}

	user := router.Group("", auth.RequireUser())
	{
		user.POST("/posts", c.CreatePost)
		user.PUT("/posts/:id", c.UpdatePost)
		user.DELETE("/posts/:id", c.DeletePost)
		user.POST("/posts/:id/like", c.LikePost)
		user.DELETE("/posts/:id/like", c.UnlikePost)
		user.POST("/posts/:id/favorite", c.FavoritePost)
		user.DELETE("/posts/:id/favorite", c.UnfavoritePost)
		user.POST("/posts/:id/comments", c.CreateComment)
		user.DELETE("/comments/:id", c.DeleteComment)
		user.POST("/comments/:id/like", c.LikeComment)
		user.DELETE("/comments/:id/like", c.UnlikeComment)

		user.GET("/me/posts", c.ListMyPosts)
		user.GET("/me/favorites", c.ListFavorites)
		user.GET("/me/feed", c.Feed)

		user.POST("/users/:id/follow", c.Follow)
		user.DELETE("/users/:id/follow", c.Unfollow)
		user.GET("/users/:id/follow", c.FollowStatus)

		user.GET("/notifications", c.ListNotifications)
		user.GET("/notifications/unread-count", c.UnreadCount)
		user.PUT("/notifications/:id/read", c.MarkNotificationRead)
		user.PUT("/notifications/read-all", c.MarkAllNotificationsRead)

		user.POST("/reports", c.CreateReport)
	}

	admin := router.Group("/admin", auth.RequireAdmin())
	{
		admin.GET("/topics", c.AdminListTopics)
		admin.POST("/topics", c.CreateTopic)
		admin.PUT("/topics/:id", c.UpdateTopic)
		admin.DELETE("/topics/:id", c.DeleteTopic)

		admin.GET("/posts", c.AdminListPosts)
		admin.PUT("/posts/:id/review", c.ReviewPost)
		admin.DELETE("/posts/:id", c.AdminDeletePost)
		admin.DELETE("/comments/:id", c.AdminDeleteComment)

		admin.GET("/reports", c.ListReports)
		admin.PUT("/reports/:id", c.HandleReport)
	}
}

// ==================== 话题 ====================

func (c *Controller) listTopics(ctx *gin.Context, activeOnly bool) {
	page, err := c.communityService.ListTopics(ctx.Request.Context(), activeOnly, ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Topics retrieved")
}

func (c *Controller) ListTopics(ctx *gin.Context) { c.listTopics(ctx, true) }

// AdminListTopics ?active_only=true 只看启用的话题
func (c *Controller) AdminListTopics(ctx *gin.Context) {
	c.listTopics(ctx, ctxutil.QueryBool(ctx, "active_only", false))
}

func (c *Controller) GetTopic(ctx *gin.Context) {
	res, err := c.communityService.GetTopic(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Topic retrieved")
}

func (c *Controller) CreateTopic(ctx *gin.Context) {
	var req communityapp.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.CreateTopic(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Topic created")
}

func (c *Controller) UpdateTopic(ctx *gin.Context) {
	var req communityapp.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.UpdateTopic(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Topic updated")
}

func (c *Controller) DeleteTopic(ctx *gin.Context) {
	if err := c.communityService.DeleteTopic(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ==================== 帖子 ====================

func (c *Controller) ListPosts(ctx *gin.Context) {
	var req communityapp.ListPostsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.communityService.ListPosts(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Posts retrieved")
}

func (c *Controller) ListMyPosts(ctx *gin.Context) {
	var req communityapp.ListPostsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.communityService.ListMyPosts(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Posts retrieved")
}

func (c *Controller) AdminListPosts(ctx *gin.Context) {
	var req communityapp.ListPostsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.communityService.AdminListPosts(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Posts retrieved")
}

func (c *Controller) Feed(ctx *gin.Context) {
	page, err := c.communityService.Feed(ctx.Request.Context(), middleware.UserID(ctx), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Feed retrieved")
}

func (c *Controller) ListFavorites(ctx *gin.Context) {
	page, err := c.communityService.ListFavorites(ctx.Request.Context(), middleware.UserID(ctx), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Favorites retrieved")
}

// GetPost 匿名访客按 IP 去重浏览量
func (c *Controller) GetPost(ctx *gin.Context) {
	viewerID := middleware.UserID(ctx)
	viewerKey := viewerID
	if viewerKey == "" {
		viewerKey = "ip:" + ctx.ClientIP()
	}
	res, err := c.communityService.GetPost(ctx.Request.Context(), viewerID, viewerKey, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Post retrieved")
}

func (c *Controller) CreatePost(ctx *gin.Context) {
	var req communityapp.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.CreatePost(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Post created")
}

func (c *Controller) UpdatePost(ctx *gin.Context) {
	var req communityapp.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.UpdatePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Post updated")
}

func (c *Controller) DeletePost(ctx *gin.Context) {
	if err := c.communityService.DeletePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// AdminDeletePost authorID 为空即跳过作者校验
func (c *Controller) AdminDeletePost(ctx *gin.Context) {
	if err := c.communityService.DeletePost(ctx.Request.Context(), "", ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) ReviewPost(ctx *gin.Context) {
	var req communityapp.ReviewPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.ReviewPost(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Post reviewed")
}

// ==================== 互动 ====================

// react 包装点赞/收藏这类只返回 error 的操作
func (c *Controller) react(fn func(ctx *gin.Context) error) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := fn(ctx); err != nil {
			response.HandleAppError(ctx, err)
			return
		}
		response.HandleNoContent(ctx)
	}
}

func (c *Controller) LikePost(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.LikePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) UnlikePost(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.UnlikePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) FavoritePost(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.FavoritePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) UnfavoritePost(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.UnfavoritePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) LikeComment(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.LikeComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) UnlikeComment(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.UnlikeComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) Follow(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.Follow(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) Unfollow(ctx *gin.Context) {
	c.react(func(ctx *gin.Context) error {
		return c.communityService.Unfollow(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	})(ctx)
}

func (c *Controller) FollowStatus(ctx *gin.Context) {
	res, err := c.communityService.FollowStatus(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Follow status retrieved")
}

func (c *Controller) ListFollowers(ctx *gin.Context) {
	page, err := c.communityService.ListFollowers(ctx.Request.Context(), ctx.Param("id"), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Followers retrieved")
}

func (c *Controller) ListFollowing(ctx *gin.Context) {
	page, err := c.communityService.ListFollowing(ctx.Request.Context(), ctx.Param("id"), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Following retrieved")
}

// ==================== 评论 ====================

func (c *Controller) ListComments(ctx *gin.Context) {
	page, err := c.communityService.ListComments(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), ctxutil.PageQuery(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Comments retrieved")
}

func (c *Controller) CreateComment(ctx *gin.Context) {
	var req communityapp.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.CreateComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Comment created")
}

func (c *Controller) DeleteComment(ctx *gin.Context) {
	if err := c.communityService.DeleteComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) AdminDeleteComment(ctx *gin.Context) {
	if err := c.communityService.DeleteComment(ctx.Request.Context(), "", ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ==================== 通知 ====================

func (c *Controller) ListNotifications(ctx *gin.Context) {
	var req communityapp.ListNotificationsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.communityService.ListNotifications(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Notifications retrieved")
}

func (c *Controller) UnreadCount(ctx *gin.Context) {
	res, err := c.communityService.UnreadCount(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Unread count retrieved")
}

func (c *Controller) MarkNotificationRead(ctx *gin.Context) {
	if err := c.communityService.MarkNotificationRead(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) MarkAllNotificationsRead(ctx *gin.Context) {
	n, err := c.communityService.MarkAllNotificationsRead(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, gin.H{"updated": n}, "Notifications marked as read")
}

// ==================== 举报 ====================

func (c *Controller) CreateReport(ctx *gin.Context) {
	var req communityapp.ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.CreateReport(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, res, "Report submitted")
}

func (c *Controller) ListReports(ctx *gin.Context) {
	var req communityapp.ListReportsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	page, err := c.communityService.ListReports(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, "Reports retrieved")
}

func (c *Controller) HandleReport(ctx *gin.Context) {
	var req communityapp.HandleReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}
	res, err := c.communityService.HandleReport(ctx.Request.Context(), middleware.AdminID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, res, "Report handled")
}
