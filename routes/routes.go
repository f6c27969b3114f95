package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, verifier middleware.TokenVerifier, users store.UserStore, log logrus.FieldLogger) {
	pipe := func(stages ...middleware.Stage) gin.HandlerFunc {
		return middleware.Pipeline(log, stages...)
	}
	authenticate := middleware.Authenticate(verifier)
	resolveUser := middleware.ResolveUser(users)

	r.GET("/health", handlers.Health)

	// ── Current user ───────────────────────────────────────────────
	my := r.Group("/api/my")
	{
		my.GET("/user", pipe(authenticate, resolveUser, h.GetCurrentUser))
		my.POST("/user", pipe(authenticate, middleware.BindJSON[handlers.CreateUserRequest](), h.CreateCurrentUser))
		my.PUT("/user", pipe(authenticate, resolveUser, middleware.BindJSON[handlers.UpdateUserRequest](), h.UpdateCurrentUser))

		my.GET("/restaurant", pipe(authenticate, resolveUser, h.GetMyRestaurant))
		my.POST("/restaurant", pipe(authenticate, resolveUser, handlers.BindRestaurantForm, h.CreateMyRestaurant))
		my.PUT("/restaurant", pipe(authenticate, resolveUser, handlers.BindRestaurantForm, h.UpdateMyRestaurant))

		my.GET("/restaurant/order", pipe(authenticate, resolveUser, h.GetMyRestaurantOrders))
		my.PATCH("/restaurant/order/:orderId/status", pipe(authenticate, resolveUser,
			middleware.BindJSON[handlers.UpdateOrderStatusRequest](), h.UpdateOrderStatus))
	}

	// ── Public catalog ─────────────────────────────────────────────
	r.GET("/api/restaurant/:city", pipe(h.SearchRestaurants))
	r.GET("/api/restaurants/:restaurantId", pipe(h.GetRestaurant))

	// ── Orders ─────────────────────────────────────────────────────
	order := r.Group("/api/order")
	{
		order.GET("", pipe(authenticate, resolveUser, h.GetMyOrders))
		order.GET("/lifecycle", handlers.GetOrderLifecycle)
		order.POST("/checkout/create-checkout-session", pipe(authenticate, resolveUser,
			middleware.BindJSON[handlers.CheckoutRequest](), h.CreateCheckoutSession))
		order.POST("/checkout/webhook", pipe(h.StripeWebhook))
	}
}
