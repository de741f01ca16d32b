package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/handler"
	"github.com/openagora/agora-backend/internal/middleware"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/pkg/jwt"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Category     *handler.CategoryHandler
	Thread       *handler.ThreadHandler
	Post         *handler.PostHandler
	Reaction     *handler.ReactionHandler
	Tag          *handler.TagHandler
	Notification *handler.NotificationHandler
	WS           *handler.WSHandler
}

// Setup mounts the API surface on the engine.
func Setup(r *gin.Engine, h *Handlers, jwtManager *jwt.Manager, userRepo repository.UserRepository) {
	authRequired := middleware.JWTAuth(jwtManager, userRepo)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.GET("/verify-email/:token", h.Auth.VerifyEmail)
			auth.POST("/forgot-password", h.Auth.ForgotPassword)
			auth.POST("/reset-password/:token", h.Auth.ResetPassword)
		}

		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/profile", h.User.GetProfile)
			users.PUT("/profile", h.User.UpdateProfile)
			users.PUT("/change-password", h.User.ChangePassword)

			admin := users.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", h.User.List)
				admin.GET("/:id", h.User.GetByID)
				admin.PUT("/:id", h.User.AdminUpdate)
				admin.DELETE("/:id", h.User.Delete)
			}
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.GET("/:id", h.Category.GetByID)

			admin := categories.Group("")
			admin.Use(authRequired, middleware.RequireAdmin())
			{
				admin.POST("", h.Category.Create)
				admin.PUT("/:id", h.Category.Update)
				admin.DELETE("/:id", h.Category.Delete)
			}
		}

		threads := api.Group("/threads")
		{
			threads.GET("", h.Thread.List)
			threads.GET("/:id", h.Thread.GetByID)

			authed := threads.Group("")
			authed.Use(authRequired)
			{
				authed.POST("", h.Thread.Create)
				authed.PUT("/:id", h.Thread.Update)
				authed.DELETE("/:id", h.Thread.Delete)

				mod := authed.Group("")
				mod.Use(middleware.RequireModerator())
				{
					mod.PUT("/:id/lock", h.Thread.ToggleLock)
					mod.PUT("/:id/pin", h.Thread.TogglePin)
				}
			}
		}

		posts := api.Group("/posts")
		{
			posts.GET("", h.Post.List)
			posts.GET("/:id", h.Post.GetByID)

			authed := posts.Group("")
			authed.Use(authRequired)
			{
				authed.POST("", h.Post.Create)
				authed.PUT("/:id", h.Post.Update)
				authed.DELETE("/:id", h.Post.Delete)
			}
		}

		reactions := api.Group("/reactions")
		{
			reactions.GET("/posts/:postId", h.Reaction.ListByPost)

			authed := reactions.Group("")
			authed.Use(authRequired)
			{
				authed.POST("/posts/:postId", h.Reaction.Add)
				authed.DELETE("/posts/:postId", h.Reaction.Remove)
			}
		}

		tags := api.Group("/tags")
		{
			tags.GET("", h.Tag.List)

			mod := tags.Group("")
			mod.Use(authRequired, middleware.RequireModerator())
			{
				mod.POST("", h.Tag.Create)
			}
		}

		notifications := api.Group("/notifications")
		notifications.Use(authRequired)
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.PATCH("/:id/read", h.Notification.MarkAsRead)
			notifications.PATCH("/read-all", h.Notification.MarkAllAsRead)
		}
	}

	r.GET("/ws/notifications", h.WS.Serve)
}
