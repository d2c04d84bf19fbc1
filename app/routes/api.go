package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/graph"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/payments"
	"github.com/shashiranjanraj/bistro/pkg/reqid"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"github.com/shashiranjanraj/bistro/pkg/router"
	"github.com/shashiranjanraj/bistro/pkg/ws"
)

// Deps carries the shared singletons the route table needs.
type Deps struct {
	OrderFeed *ws.Hub
}

// RegisterAPI wires every route. The table mirrors the storefront client:
// public reads, token-gated customer routes, and admin-gated management
// routes layered as token gate first, role gate second.
func RegisterAPI(r *router.Router, deps Deps) {
	users := repositories.NewUserRepository(database.Collection("users"))
	menu := repositories.NewMenuRepository(database.Collection("menu"))
	carts := repositories.NewCartRepository(database.Collection("carts"))
	paymentsRepo := repositories.NewPaymentRepository(database.Collection("payments"))
	reviews := repositories.NewReviewRepository(database.Collection("reviews"))

	authService := services.NewAuthService(users)
	paymentService := services.NewPaymentService(payments.NewStripeGateway(), paymentsRepo, carts)

	authCtrl := controllers.NewAuthController(authService)
	userCtrl := controllers.NewUserController(users)
	menuCtrl := controllers.NewMenuController(menu)
	cartCtrl := controllers.NewCartController(carts)
	reviewCtrl := controllers.NewReviewController(reviews)
	paymentCtrl := controllers.NewPaymentController(paymentService, paymentsRepo)

	r.Use(reqid.Middleware(), middleware.Logger, middleware.Recovery,
		metrics.Middleware(), middleware.CORS(middleware.DefaultCORSOptions()))

	// Public surface.
	r.Get("/", "liveness", func(w http.ResponseWriter, _ *http.Request) {
		response.SuccessMessage(w, "bistro is running", nil)
	})
	r.Post("/jwt", "auth.token", authCtrl.IssueToken, middleware.RateLimit(20, time.Minute))
	r.Post("/users", "users.register", userCtrl.Register, middleware.RateLimit(20, time.Minute))
	r.Get("/menu", "menu.list", menuCtrl.List)
	r.Get("/menu/{id}", "menu.show", menuCtrl.Show)
	r.Get("/reviews", "reviews.list", reviewCtrl.List)
	r.Post("/reviews", "reviews.create", reviewCtrl.Create)
	r.Get("/carts", "carts.list", cartCtrl.List)
	r.Post("/carts", "carts.add", cartCtrl.Add)
	r.Delete("/carts/{id}", "carts.remove", cartCtrl.Remove)
	r.Post("/create-payment-intent", "payments.intent", paymentCtrl.CreateIntent)
	r.Post("/payments", "payments.record", paymentCtrl.Record)

	// Token-gated customer routes: the caller may only ask about their
	// own identity, so the handlers compare the path email to the claims.
	customer := r.Group("", middleware.Authenticate)
	customer.Get("/users/admin/{email}", "users.check_admin", userCtrl.CheckAdmin)
	customer.Get("/payments/{email}", "payments.history", paymentCtrl.History)

	// Admin management routes: the token gate always runs before the
	// role gate, so an unauthenticated caller never triggers a lookup.
	admin := r.Group("", middleware.Authenticate, middleware.AdminOnly(authService))
	admin.Get("/users", "users.list", userCtrl.List)
	admin.Delete("/users/{id}", "users.delete", userCtrl.Delete)
	admin.Patch("/users/admin/{id}", "users.promote", userCtrl.Promote)
	admin.Post("/menu", "menu.create", menuCtrl.Create)
	admin.Patch("/menu/{id}", "menu.update", menuCtrl.Update)
	admin.Delete("/menu/{id}", "menu.delete", menuCtrl.Delete)
	admin.Post("/menu/{id}/image", "menu.upload_image", menuCtrl.UploadImage)

	// Live order feed for the admin dashboard. Browsers cannot set an
	// Authorization header on a websocket handshake, so the token rides
	// the query string.
	if deps.OrderFeed != nil {
		r.Handle("/ws/orders", "orders.feed", wsOrderFeed(deps.OrderFeed, authService))
	}

	// GraphQL read model over the public catalog.
	if schema, err := graph.NewSchema(menu, reviews); err != nil {
		logger.L.Error("graphql schema build failed", "error", err)
	} else {
		r.Post("/graphql", "graphql", graph.Handler(schema))
	}

	r.Handle("/metrics", "metrics", metrics.Handler())
}

func wsOrderFeed(hub *ws.Hub, roles middleware.RoleLookup) http.Handler {
	upgrade := hub.UpgradeHandler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.ValidateToken(r.URL.Query().Get("token"))
		if err != nil {
			response.Unauthorized(w)
			return
		}
		if !roles.IsAdmin(r.Context(), claims.Email) {
			response.Forbidden(w)
			return
		}
		upgrade.ServeHTTP(w, r)
	})
}
