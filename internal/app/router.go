package app

import (
	"gathered_backend/docs"
	"gathered_backend/internal/config"
	"gathered_backend/internal/middleware"
	"gathered_backend/internal/model"
	"gathered_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerMemberRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/devotional", c.devotional.GetCurrentDevotional)

		// Browsing public groups and the leaderboard works for guests too.
		public.GET("/groups", c.group.ListGroups)
		public.GET("/groups/:id", middleware.TryAuthMiddleware(a.Config), c.group.GetGroup)
		public.GET("/gamification/leaderboard", c.gamification.GetLeaderboard)
		public.GET("/gamification/badges", c.gamification.GetBadgeCatalog)
	}
}

func (a *App) registerMemberRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)
	rg.GET("/user/notification-preference", c.user.GetNotificationPreference)
	rg.PUT("/user/notification-preference", c.user.UpdateNotificationPreference)

	// Fellowship groups
	rg.POST("/groups", c.group.CreateGroup)
	rg.GET("/groups/mine", c.group.MyGroups)
	rg.POST("/groups/:id/join", c.group.JoinGroup)
	rg.POST("/groups/:id/leave", c.group.LeaveGroup)
	rg.GET("/groups/:id/members", c.group.ListMembers)
	rg.GET("/groups/:id/events", c.event.ListGroupEvents)

	// Events
	rg.POST("/events", c.event.CreateEvent)
	rg.GET("/events/:id", c.event.GetEvent)
	rg.POST("/events/:id/rsvp", c.event.RSVP)

	// Gamification
	rg.POST("/gamification/activity", c.gamification.RecordActivity)
	rg.GET("/gamification/streaks", c.gamification.ListStreaks)
	rg.GET("/gamification/streaks/:groupId", c.gamification.GetStreak)
	rg.GET("/gamification/badges/mine", c.gamification.GetMyBadges)

	// Group chat
	chat := rg.Group("/chat")
	{
		chat.GET("/ws", c.chat.Connect)
		chat.GET("/channels", c.chat.ListChannels)
		chat.GET("/:groupId/messages", c.chat.GetHistory)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	admin.Use(middleware.RoleMiddleware(model.AdminRole))
	{
		admin.GET("/devotionals", c.devotional.ListDevotionals)
		admin.POST("/devotionals", c.devotional.CreateDevotional)
		admin.PUT("/devotionals/:id", c.devotional.UpdateDevotional)
		admin.DELETE("/devotionals/:id", c.devotional.DeleteDevotional)
		admin.POST("/devotionals/:id/audio", c.devotional.UploadAudio)
	}
}
