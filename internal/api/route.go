package api

import (
	"BridgeUS/internal/api/middleware"
	"BridgeUS/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.GetPosts)
				authOptGroup.GET("/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/:post_id/replies", group.ReplyHandler.GetReplies)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.POST("/:post_id/resubmit", group.PostHandler.ResubmitPost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.GET("/mine/list", group.PostHandler.GetMyPosts)

				authGroup.POST("/:post_id/replies", group.ReplyHandler.CreateReply)

				authGroup.POST("/:post_id/helpful", group.InteractionHandler.VotePost)
				authGroup.DELETE("/:post_id/helpful", group.InteractionHandler.UnvotePost)
				authGroup.POST("/:post_id/feedback", group.InteractionHandler.RatePost)
				authGroup.PUT("/:post_id/feedback", group.InteractionHandler.UpdateRating)
				authGroup.DELETE("/:post_id/feedback", group.InteractionHandler.DeleteRating)
			}
		}

		replyGroup := apiGroup.Group("/replies")
		{
			replyGroup.Use(middleware.AuthMiddleware())
			{
				replyGroup.DELETE("/:reply_id", group.ReplyHandler.DeleteReply)
				replyGroup.POST("/:reply_id/helpful", group.InteractionHandler.VoteReply)
				replyGroup.DELETE("/:reply_id/helpful", group.InteractionHandler.UnvoteReply)
			}
		}

		notificationGroup := apiGroup.Group("/notifications")
		{
			notificationGroup.Use(middleware.AuthMiddleware())
			{
				notificationGroup.GET("", group.NotificationHandler.GetNotifications)
				notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
				notificationGroup.PUT("/:notification_id/read", group.NotificationHandler.MarkRead)
				notificationGroup.PUT("/read-all", group.NotificationHandler.MarkAllRead)
			}
		}

		appealGroup := apiGroup.Group("/appeals")
		{
			appealGroup.Use(middleware.AuthMiddleware())
			{
				appealGroup.POST("", group.ModerationHandler.CreateAppeal)
				appealGroup.GET("/mine", group.ModerationHandler.GetMyAppeals)
			}
		}

		// 需要登录 & 拥有审核角色
		moderationGroup := apiGroup.Group("/moderation")
		moderationGroup.Use(middleware.AuthMiddleware())
		moderationGroup.Use(middleware.CheckRoles("MODERATOR", "ADMIN"))
		{
			moderationGroup.GET("/queue", group.ModerationHandler.GetReviewQueue)
			moderationGroup.POST("/posts/:post_id/resolve", group.ModerationHandler.ResolvePostReview)
			moderationGroup.POST("/posts/:post_id/hide", group.ModerationHandler.HidePost)
			moderationGroup.POST("/posts/:post_id/restore", group.ModerationHandler.RestorePost)
			moderationGroup.POST("/replies/:reply_id/hide", group.ModerationHandler.HideReply)
			moderationGroup.POST("/replies/:reply_id/restore", group.ModerationHandler.RestoreReply)
			moderationGroup.GET("/logs", group.ModerationHandler.GetLogs)
			moderationGroup.GET("/appeals", group.ModerationHandler.GetAppeals)
			moderationGroup.POST("/appeals/:appeal_id/resolve", group.ModerationHandler.ResolveAppeal)
		}

		logGroup := apiGroup.Group("/moderation-logs")
		{
			logGroup.Use(middleware.AuthMiddleware())
			{
				logGroup.GET("/mine", group.ModerationHandler.GetMyLogs)
			}
		}
	}

	return r
}
