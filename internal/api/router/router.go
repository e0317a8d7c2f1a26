package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/handler"
	m "github.com/RoyceAzure/lab/shop/internal/api/middleware"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/RoyceAzure/lab/shop/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type Options struct {
	CorsOrigins []string
	MediaURL    string
	MediaFs     afero.Fs
	// StaticFs 為 nil 時不提供前端頁面
	StaticFs afero.Fs
}

func SetupRouter(server *api.Server, tokenMaker token.Maker, userService service.IUserService, logger *zerolog.Logger, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.CorsMiddleware(opts.CorsOrigins))
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	// 子路由會繼承, 需在 Route 之前設定
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.ErrorCode(w, apperr.NotFoundCode)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.ErrorCode(w, apperr.Code(http.StatusMethodNotAllowed), "method not allowed")
	})

	adminOnly := m.AdminMiddleware(userService)

	r.Get("/health", server.HealthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", server.CategoryHandler.ListCategories)
			r.Group(func(r chi.Router) {
				r.Use(m.AuthMiddleware, adminOnly)
				r.Post("/", server.CategoryHandler.CreateCategory)
				r.Put("/{id}", server.CategoryHandler.UpdateCategory)
				r.Delete("/{id}", server.CategoryHandler.DeleteCategory)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/new", server.ProductHandler.ListNewProducts)
			r.Get("/{id}", server.ProductHandler.GetProduct)
			r.Get("/{id}/images", server.ProductHandler.ListProductImages)
			r.Group(func(r chi.Router) {
				r.Use(m.AuthMiddleware, adminOnly)
				r.Post("/", server.ProductHandler.CreateProduct)
				r.Put("/{id}", server.ProductHandler.UpdateProduct)
				r.Delete("/{id}", server.ProductHandler.DeleteProduct)
				r.Post("/{id}/upload-image", server.ProductHandler.UploadImage)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Get("/", server.CartHandler.GetCart)
			r.Post("/", server.CartHandler.AddToCart)
			r.Put("/", server.CartHandler.UpdateCartItem)
			r.Delete("/clear", server.CartHandler.ClearCart)
			r.Delete("/{product_id}", server.CartHandler.RemoveCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Post("/", server.OrderHandler.Checkout)
			r.Get("/", server.OrderHandler.ListOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", server.ReviewHandler.ListReviews)
			r.Group(func(r chi.Router) {
				r.Use(m.AuthMiddleware)
				r.Post("/", server.ReviewHandler.CreateReview)
				r.Put("/{id}", server.ReviewHandler.UpdateReview)
				r.Delete("/{id}", server.ReviewHandler.DeleteReview)
			})
			r.Group(func(r chi.Router) {
				r.Use(m.AuthMiddleware, adminOnly)
				r.Get("/admin", server.ReviewHandler.AdminListReviews)
				r.Delete("/admin/{id}", server.ReviewHandler.AdminDeleteReview)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Get("/profile", server.UserHandler.GetProfile)
			r.Put("/profile", server.UserHandler.UpdateProfile)
			r.Put("/password", server.UserHandler.ChangePassword)
			r.Get("/orders", server.UserHandler.ListOrders)
			r.Get("/points", server.UserHandler.ListPoints)
			r.Get("/addresses", server.UserHandler.ListAddresses)
			r.Post("/addresses", server.UserHandler.CreateAddress)
			r.Put("/addresses/{id}", server.UserHandler.UpdateAddress)
			r.Delete("/addresses/{id}", server.UserHandler.DeleteAddress)
			r.Get("/cards", server.UserHandler.ListCards)
			r.Post("/cards", server.UserHandler.AddCard)
			r.Delete("/cards/{id}", server.UserHandler.DeleteCard)
			r.Delete("/", server.UserHandler.DeleteAccount)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(m.AuthMiddleware, adminOnly)
			r.Get("/products", server.AdminHandler.ListProducts)
			r.Post("/products", server.AdminHandler.CreateProduct)
			r.Put("/products/{id}", server.AdminHandler.UpdateProduct)
			r.Delete("/products/{id}", server.AdminHandler.DeleteProduct)
			r.Get("/orders", server.AdminHandler.ListOrders)
			r.Get("/orders/{id}", server.AdminHandler.GetOrder)
			r.Put("/orders/{id}", server.AdminHandler.UpdateOrderStatus)
			r.Get("/categories", server.AdminHandler.ListCategories)
			r.Post("/categories", server.AdminHandler.CreateCategory)
		})
	})

	if opts.MediaFs != nil && opts.MediaURL != "" {
		r.Handle(opts.MediaURL+"/*", handler.MediaHandler(opts.MediaFs, opts.MediaURL))
	}
	if opts.StaticFs != nil {
		r.Handle("/*", handler.SPAHandler(opts.StaticFs))
	}
	return r
}
