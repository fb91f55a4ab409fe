// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"unishare/internal/delivery/http/middleware"
	"unishare/internal/delivery/http/router/handler"
	"unishare/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	ProfileHandler      *handler.ProfileHandler
	BadgeHandler        *handler.BadgeHandler
	DocumentHandler     *handler.DocumentHandler
	ForumHandler        *handler.ForumHandler
	ShopHandler         *handler.ShopHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	auth           *handler.AuthHandler
	profile        *handler.ProfileHandler
	badge          *handler.BadgeHandler
	document       *handler.DocumentHandler
	forum          *handler.ForumHandler
	shop           *handler.ShopHandler
	notification   *handler.NotificationHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		auth:           params.AuthHandler,
		profile:        params.ProfileHandler,
		badge:          params.BadgeHandler,
		document:       params.DocumentHandler,
		forum:          params.ForumHandler,
		shop:           params.ShopHandler,
		notification:   params.NotificationHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.auth.Register)
		authGroup.POST("/login", r.auth.Login)
		authGroup.POST("/refresh", r.auth.Refresh)
		authGroup.POST("/logout", r.auth.Logout)
	}

	// Public reads, no authentication required
	e.GET("/stats", r.document.PlatformStats)
	e.GET("/documents", r.document.List)
	e.GET("/documents/:id", r.document.Get)
	e.GET("/documents/:id/comments", r.document.ListComments)
	e.GET("/badges", r.badge.ListCatalog)
	e.GET("/shop/items", r.shop.ListItems)
	e.GET("/leaderboard", r.profile.GetLeaderboard)
	e.GET("/users/:id", r.profile.GetProfile)
	e.GET("/users/:id/badges", r.badge.ListUserBadges)
	e.GET("/forum/threads", r.forum.ListThreads)
	e.GET("/forum/threads/:id", r.forum.GetThread)
	e.GET("/forum/threads/:id/replies", r.forum.ListReplies)

	// Member routes that require authentication
	me := e.Group("/me")
	me.Use(r.authMiddleware.Authenticate)
	{
		me.GET("/profile", r.profile.GetMyProfile)
		me.PATCH("/profile", r.profile.UpdateMyProfile)
		me.GET("/badges", r.badge.ListMyBadges)
		me.GET("/notifications", r.notification.List)
		me.GET("/notifications/unread", r.notification.CountUnread)
		me.PATCH("/notifications/:id/read", r.notification.MarkRead)
		me.POST("/notifications/read-all", r.notification.MarkAllRead)
		me.POST("/devices", r.notification.RegisterDevice)
		me.GET("/follows", r.profile.ListMyFollows)
		me.POST("/follows", r.profile.Follow)
		me.DELETE("/follows", r.profile.Unfollow)
		me.GET("/purchases", r.shop.ListPurchases)
		me.GET("/purchases/:id/voucher", r.shop.GetVoucher)
	}

	documentGroup := e.Group("/documents")
	documentGroup.Use(r.authMiddleware.Authenticate)
	{
		documentGroup.POST("", r.document.Upload)
		documentGroup.GET("/:id/download", r.document.Download)
		documentGroup.POST("/:id/ratings", r.document.Rate)
		documentGroup.GET("/:id/my-rating", r.document.MyRating)
		documentGroup.POST("/:id/comments", r.document.Comment)
	}

	forumGroup := e.Group("/forum/threads")
	forumGroup.Use(r.authMiddleware.Authenticate)
	{
		forumGroup.POST("", r.forum.CreateThread)
		forumGroup.POST("/:id/replies", r.forum.Reply)
		forumGroup.PATCH("/:id/replies/:replyID/best", r.forum.MarkBestAnswer)
	}

	shopGroup := e.Group("/shop")
	shopGroup.Use(r.authMiddleware.Authenticate)
	{
		shopGroup.POST("/items/:id/purchase", r.shop.Purchase)
	}

	// Moderation routes that require the moderator or admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(string(entity.RoleModerator), string(entity.RoleAdmin)))
	{
		adminGroup.GET("/documents/pending", r.document.ListPending)
		adminGroup.POST("/documents/:id/approve", r.document.Approve)
		adminGroup.POST("/documents/:id/reject", r.document.Reject)
		adminGroup.GET("/review-stats", r.document.ReviewStats)
		adminGroup.PATCH("/forum/threads/:id/pin", r.forum.SetPinned)
		adminGroup.PATCH("/forum/threads/:id/lock", r.forum.SetLocked)
		adminGroup.POST("/users/:id/verify", r.profile.VerifyUser)
		adminGroup.POST("/users/:id/points/credit", r.profile.CreditPoints)
		adminGroup.POST("/users/:id/points/debit", r.profile.DebitPoints)
	}
}
