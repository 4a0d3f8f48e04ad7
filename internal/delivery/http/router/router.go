// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"unimarket/internal/delivery/http/middleware"
	"unimarket/internal/delivery/http/router/handler"
	"unimarket/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	ProductHandler      *handler.ProductHandler
	StateHandler        *handler.StateHandler
	CheckoutHandler     *handler.CheckoutHandler
	TransactionHandler  *handler.TransactionHandler
	NotificationHandler *handler.NotificationHandler
	QuestionHandler     *handler.QuestionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	productHandler      *handler.ProductHandler
	stateHandler        *handler.StateHandler
	checkoutHandler     *handler.CheckoutHandler
	transactionHandler  *handler.TransactionHandler
	notificationHandler *handler.NotificationHandler
	questionHandler     *handler.QuestionHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		productHandler:      params.ProductHandler,
		stateHandler:        params.StateHandler,
		checkoutHandler:     params.CheckoutHandler,
		transactionHandler:  params.TransactionHandler,
		notificationHandler: params.NotificationHandler,
		questionHandler:     params.QuestionHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}

	// Public storefront routes
	e.GET("/products", r.productHandler.ListProducts)
	e.GET("/products/:id", r.productHandler.GetProduct)
	e.GET("/products/:id/qr", r.productHandler.ShareQR)

	// Everything below requires a valid access token
	api := e.Group("")
	api.Use(r.authMiddleware.Authenticate)
	{
		// Account
		api.GET("/user/profile", r.userHandler.GetProfile)
		api.POST("/user/devices", r.userHandler.RegisterDevice)
		api.PATCH("/user/payment-details", r.userHandler.UpdatePaymentDetails)
		api.POST("/sellers/:id/ratings", r.userHandler.RateSeller)

		// Listings owned by the caller
		api.POST("/products", r.productHandler.CreateProduct)
		api.PATCH("/products/:id", r.productHandler.UpdateProduct)
		api.POST("/products/:id/status", r.productHandler.ChangeStatus)
		api.DELETE("/products/:id", r.productHandler.DeleteProduct)

		// Cart, favorites and cached user snapshot
		api.GET("/state", r.stateHandler.GetState)
		api.POST("/state/refresh-user", r.stateHandler.RefreshUser)
		api.GET("/cart", r.stateHandler.GetState)
		api.POST("/cart/items", r.stateHandler.AddToCart)
		api.POST("/cart/items/:id/decrease", r.stateHandler.DecreaseQuantity)
		api.DELETE("/cart/items/:id", r.stateHandler.RemoveFromCart)
		api.DELETE("/cart", r.stateHandler.ResetCart)
		api.GET("/favorites", r.stateHandler.GetState)
		api.POST("/favorites", r.stateHandler.ToggleFavorite)
		api.DELETE("/favorites/:id", r.stateHandler.RemoveFromFavorite)
		api.DELETE("/favorites", r.stateHandler.ResetFavorite)

		// Purchase flow
		api.POST("/checkout", r.checkoutHandler.Checkout)
		api.GET("/transactions", r.transactionHandler.ListTransactions)
		api.PATCH("/transactions/:id/status", r.transactionHandler.UpdateStatus)

		// Notification feed
		api.GET("/notifications", r.notificationHandler.ListNotifications)
		api.POST("/notifications/:id/read", r.notificationHandler.MarkRead)

		// Support questions
		api.POST("/questions", r.questionHandler.SubmitQuestion)
	}

	// Support console routes require the admin role
	requireAdmin := []echo.MiddlewareFunc{
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(string(entity.RoleAdmin)),
	}
	e.GET("/questions", r.questionHandler.ListUnanswered, requireAdmin...)
	e.POST("/questions/:id/answer", r.questionHandler.AnswerQuestion, requireAdmin...)
}
