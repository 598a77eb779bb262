// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/config"
	"github.com/storelane/storelane-backend/internal/handlers"
	"github.com/storelane/storelane-backend/internal/middleware"
	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	categoryService := services.NewCategoryService(db)
	cartService := services.NewCartService(db)
	wishlistService := services.NewWishlistService(db)
	couponService := services.NewCouponService(db)
	orderService := services.NewOrderService(db, cfg, couponService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	orderHandler := handlers.NewOrderHandler(orderService)
	couponHandler := handlers.NewCouponHandler(couponService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(db), authHandler.Me)
		}

		// Profile and address book
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired(db))
		{
			users.PATCH("/me", userHandler.UpdateProfile)
			users.GET("/me/addresses", userHandler.ListAddresses)
			users.POST("/me/addresses", userHandler.CreateAddress)
			users.PATCH("/me/addresses/:id", userHandler.UpdateAddress)
			users.DELETE("/me/addresses/:id", userHandler.DeleteAddress)
		}

		// Catalog routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(db), productHandler.Search)
			products.GET("/:id", productHandler.GetByID)
			products.GET("/slug/:slug", productHandler.GetBySlug)

			// Catalog management
			managed := products.Group("")
			managed.Use(middleware.AuthRequired(db), middleware.RoleRequired(models.RoleManager))
			{
				managed.POST("", productHandler.Create)
				managed.PATCH("/:id", productHandler.Update)
				managed.DELETE("/:id", productHandler.Delete)
				managed.GET("/:id/inventory", productHandler.ListInventoryLogs)
				managed.POST("/:id/images", middleware.UploadRateLimit(), productHandler.UploadImages)
			}
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", middleware.OptionalAuth(db), categoryHandler.List)
			categories.GET("/:id", categoryHandler.GetByID)

			managed := categories.Group("")
			managed.Use(middleware.AuthRequired(db), middleware.RoleRequired(models.RoleManager))
			{
				managed.POST("", categoryHandler.Create)
				managed.PATCH("/:id", categoryHandler.Update)
				managed.DELETE("/:id", categoryHandler.Delete)
			}
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired(db))
		{
			cart.GET("", cartHandler.Get)
			cart.DELETE("", cartHandler.Clear)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:product_id", cartHandler.SetItemQuantity)
			cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
		}

		// Wishlist routes
		wishlist := v1.Group("/wishlist")
		wishlist.Use(middleware.AuthRequired(db))
		{
			wishlist.GET("", wishlistHandler.ListItems)
			wishlist.POST("/items", wishlistHandler.AddItems)
			wishlist.PATCH("/items/:product_id", wishlistHandler.UpdateItem)
			wishlist.DELETE("/items/:product_id", wishlistHandler.RemoveItem)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired(db))
		{
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.GetByID)
			orders.PATCH("/:id/status", middleware.RoleRequired(models.RoleStaff), orderHandler.UpdateStatus)
		}

		// Coupon management
		coupons := v1.Group("/coupons")
		coupons.Use(middleware.AuthRequired(db), middleware.RoleRequired(models.RoleManager))
		{
			coupons.GET("", couponHandler.List)
			coupons.GET("/:id", couponHandler.GetByID)
			coupons.POST("", couponHandler.Create)
			coupons.PATCH("/:id", couponHandler.Update)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(db), middleware.RoleRequired(models.RoleAdmin))
		{
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", userHandler.AdminListUsers)
				adminUsers.GET("/:id", userHandler.AdminGetUser)
				adminUsers.PATCH("/:id", userHandler.AdminUpdateUser)
				adminUsers.PATCH("/:id/role", userHandler.AdminChangeRole)
				adminUsers.DELETE("/:id", userHandler.AdminDeactivateUser)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
