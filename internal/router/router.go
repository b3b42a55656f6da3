package router

import (
	"aiinasia/internal/handlers"
	"aiinasia/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	articleHandler := handlers.NewArticleHandler()
	commentHandler := handlers.NewCommentHandler()
	reactionHandler := handlers.NewReactionHandler()
	userHandler := handlers.NewUserHandler()
	moderationHandler := handlers.NewModerationHandler()

	// Public routes
	r.GET("/", articleHandler.List)
	r.GET("/search", articleHandler.Search)
	r.GET("/a/:aid", articleHandler.Detail)          // Article detail with comment thread
	r.GET("/c/:slug", articleHandler.ListByCategory) // Articles in one category
	r.GET("/u/:id", userHandler.Profile)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Signed-in routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/a/:aid/comment", commentHandler.Create)               // Comment or reply
		authorized.DELETE("/comment/:cid", commentHandler.Delete)               // Remove own comment
		authorized.POST("/comment/:cid/react/:kind", reactionHandler.Toggle)    // Toggle one reaction kind
		authorized.GET("/me/points", userHandler.PointLogs)
	}

	// Moderation console (admins only)
	moderation := r.Group("/moderation")
	moderation.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		moderation.GET("/a/:aid", moderationHandler.Console)                  // Console for one article
		moderation.POST("/a/:aid/generate", moderationHandler.Generate)       // Generate AI comment batch
		moderation.POST("/a/:aid/regenerate", moderationHandler.RegenerateAll) // Delete + generate (confirm)
		moderation.POST("/a/:aid/publish-all", moderationHandler.PublishAll)
		moderation.POST("/a/:aid/unpublish-all", moderationHandler.UnpublishAll)
		moderation.POST("/a/:aid/delete-all", moderationHandler.DeleteAll) // Confirm
		moderation.POST("/a/:aid/seo", moderationHandler.GenerateSEO)     // Refresh SEO metadata

		moderation.POST("/comment/:cid/toggle", moderationHandler.TogglePublish)
		moderation.POST("/comment/:cid/edit", moderationHandler.Edit)
		moderation.POST("/comment/:cid/date", moderationHandler.SetCommentDate)
		moderation.DELETE("/comment/:cid", moderationHandler.Delete) // Confirm

		moderation.POST("/pending/:cid/approve", moderationHandler.Approve)
		moderation.POST("/pending/:cid/reject", moderationHandler.Reject)
	}
}
