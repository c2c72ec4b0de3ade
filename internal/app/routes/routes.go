package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ykaya/deptportal/internal/app/auth"
	"github.com/ykaya/deptportal/internal/app/controllers"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	accountController *controllers.AccountController,
	postController *controllers.PostController,
	pollController *controllers.PollController,
	leaderboardController *controllers.LeaderboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
	}

	// Public content; an optional token widens post visibility for authors
	// and moderators
	posts := v1.Group("/posts")
	posts.Use(authMiddleware.OptionalJWTAuth())
	{
		posts.GET("", postController.ListPosts)
		posts.GET("/:id", postController.GetPost)
		posts.POST("/:id/view", postController.RegisterView)
	}

	polls := v1.Group("/polls")
	{
		polls.GET("", pollController.ListPolls)
		polls.GET("/:id", pollController.GetPoll)
	}

	v1.GET("/leaderboard", leaderboardController.GetLeaderboard)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile is reachable even while the account is still pending
		authenticated.GET("/profile", accountController.GetProfile)
		authenticated.PUT("/profile", accountController.UpdateProfile)
	}

	// Member routes require an approved account
	members := authenticated.Group("")
	members.Use(authMiddleware.ApprovalRequired())
	{
		members.POST("/posts", postController.CreatePost)
		members.POST("/posts/:id/like", postController.Like)
		members.DELETE("/posts/:id/like", postController.Unlike)
		members.POST("/polls/:id/vote", pollController.Vote)
	}

	// Moderation routes for admins and super admins
	moderation := members.Group("/moderation")
	moderation.Use(authMiddleware.ActionRequired(auth.ActionViewModeration))
	{
		moderation.GET("/posts", postController.ListModerationQueue)
		moderation.PUT("/posts/:id/approval", postController.SetApproval)
		moderation.PUT("/posts/:id/featured", postController.SetFeatured)
	}

	pollAdmin := members.Group("/polls")
	pollAdmin.Use(authMiddleware.ActionRequired(auth.ActionCreatePoll))
	{
		pollAdmin.POST("", pollController.CreatePoll)
		pollAdmin.POST("/:id/close", pollController.ClosePoll)
	}

	// Account administration for the super admin
	accounts := members.Group("/accounts")
	accounts.Use(authMiddleware.ActionRequired(auth.ActionListAccounts))
	{
		accounts.GET("", accountController.ListAccounts)
		accounts.PUT("/:id/approval", accountController.SetApprovalStatus)
		accounts.PUT("/:id/role", accountController.SetRole)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
