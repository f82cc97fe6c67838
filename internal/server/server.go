package server

import (
	"strings"
	"time"

	"scopri.app/eventilocali/internal/config"
	"scopri.app/eventilocali/internal/middleware"

	adminHttp "scopri.app/eventilocali/internal/modules/admin/delivery/http"
	adminService "scopri.app/eventilocali/internal/modules/admin/service"

	clickHttp "scopri.app/eventilocali/internal/modules/click/delivery/http"
	clickRepo "scopri.app/eventilocali/internal/modules/click/repository"
	clickService "scopri.app/eventilocali/internal/modules/click/service"

	eventHttp "scopri.app/eventilocali/internal/modules/event/delivery/http"
	eventRepo "scopri.app/eventilocali/internal/modules/event/repository"
	eventService "scopri.app/eventilocali/internal/modules/event/service"

	leaderboardHttp "scopri.app/eventilocali/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "scopri.app/eventilocali/internal/modules/leaderboard/repository"
	leaderboardService "scopri.app/eventilocali/internal/modules/leaderboard/service"

	notiHttp "scopri.app/eventilocali/internal/modules/notification/delivery/http"
	notifRepo "scopri.app/eventilocali/internal/modules/notification/repository"
	notifService "scopri.app/eventilocali/internal/modules/notification/service"

	reviewHttp "scopri.app/eventilocali/internal/modules/review/delivery/http"
	reviewService "scopri.app/eventilocali/internal/modules/review/service"

	searchService "scopri.app/eventilocali/internal/modules/search/service"

	userHttp "scopri.app/eventilocali/internal/modules/user/delivery/http"
	userRepo "scopri.app/eventilocali/internal/modules/user/repository"
	userService "scopri.app/eventilocali/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

// NewServer wires every module onto one gin engine. Both redisClient and
// meiliClient may be nil; the services degrade to database-only behavior.
func NewServer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, meiliClient meilisearch.ServiceManager) *Server {
	var searchSvc searchService.EventSearchService
	if meiliClient != nil {
		searchSvc = searchService.NewEventSearchService(meiliClient)
	}

	users := userRepo.NewUserRepository(db)
	events := eventRepo.NewEventRepository(db)
	clicks := clickRepo.NewClickRepository(db)

	authSvc := userService.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	eventSvc := eventService.NewEventService(events, searchSvc)
	eventHandler := eventHttp.NewEventHandler(eventSvc)

	clickSvc := clickService.NewClickService(clicks, events)
	clickHandler := clickHttp.NewClickHandler(clickSvc)

	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	reviewSvc := reviewService.NewReviewService(events, users, notificationSvc, searchSvc)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	leaderboards := leaderboardRepo.NewLeaderboardRepository(db)
	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboards, redisClient)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	adminSvc := adminService.NewAdminService(users, events, clicks, searchSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	authProtected := api.Group("/auth")
	authProtected.Use(authMiddleware.RequireAuth())
	{
		authProtected.GET("/me", authHandler.Me)
		authProtected.PUT("/profile", authHandler.UpdateProfile)
		authProtected.GET("/profile/:username", authHandler.GetPublicProfile)
		authProtected.GET("/user/:username", authMiddleware.RequireReviewer(), authHandler.GetUserByUsername)
	}

	eventsGroup := api.Group("/events")
	{
		eventsGroup.GET("", eventHandler.ListApproved)
		eventsGroup.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		eventsGroup.POST("", authMiddleware.OptionalAuth(), eventHandler.Submit)

		eventsGroup.GET("/my-events", authMiddleware.RequireAuth(), eventHandler.MyEvents)
		eventsGroup.PUT("/:id", authMiddleware.RequireAuth(), eventHandler.Update)
		eventsGroup.POST("/:id/click", authMiddleware.RequireAuth(), clickHandler.Click)
	}

	review := api.Group("/review")
	review.Use(authMiddleware.RequireAuth(), authMiddleware.RequireReviewer())
	{
		review.GET("/events", reviewHandler.ListPending)
		review.PUT("/events/:id/approve", reviewHandler.Approve)
		review.PUT("/events/:id/reject", reviewHandler.Reject)
		review.PUT("/events/:id", reviewHandler.Modify)
		review.GET("/stats", reviewHandler.Stats)
	}

	notifications := api.Group("/notifications")
	notifications.Use(authMiddleware.RequireAuth())
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
		notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
		notifications.GET("/ws", notificationHandler.Stream)
	}

	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/users", adminHandler.Users)
		admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.GET("/events", adminHandler.Events)
		admin.GET("/events/recent", adminHandler.RecentEvents)
		admin.GET("/events/click-stats", adminHandler.ClickStats)
		admin.GET("/events/:id/clicks", adminHandler.EventClicks)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
