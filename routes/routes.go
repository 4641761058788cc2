package routes

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"

	"bayka/config"
	"bayka/controllers"
	"bayka/libs"
	"bayka/middleware"
	"bayka/models"
	"bayka/repositories"
	"bayka/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services is the wired service graph behind the HTTP routes.
type Services struct {
	Pages    *services.PageService
	Catalog  *services.CatalogService
	Detail   *services.ProductDetailService
	Blog     *services.BlogService
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Auth     *services.AuthService
	Admin    *services.ProductAdminService
}

type orderMailer interface {
	SendOrderConfirmation(session *models.CheckoutSession) error
}

type imageUploader interface {
	UploadImage(ctx context.Context, file multipart.File, filename, folder string) (string, string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// NewServices builds every service from config. rdb may be nil, in which case
// carts live in memory and the catalog is not cached.
func NewServices(cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) *Services {
	productRepo := repositories.NewProductRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	contentRepo := repositories.NewContentRepository(db)
	checkoutRepo := repositories.NewCheckoutRepository(db)
	userRepo := repositories.NewUserRepository(db)

	catalog := services.NewCatalogService(productRepo, repositories.NewProductCache(rdb, cfg.CatalogCacheTTL))
	detail := services.NewProductDetailService(productRepo)
	blog := services.NewBlogService(blogRepo)

	var mailer orderMailer
	if m, err := libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom); err != nil {
		log.Printf("Order confirmation email disabled: %v", err)
	} else {
		mailer = m
	}

	var uploader imageUploader
	if u, err := libs.NewImageUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryURL); err != nil {
		log.Printf("Image uploads disabled: %v", err)
	} else {
		uploader = u
	}

	return &Services{
		Pages:   services.NewPageService(cfg.Theme, contentRepo, catalog, blog, detail),
		Catalog: catalog,
		Detail:  detail,
		Blog:    blog,
		Cart:    services.NewCartService(repositories.NewCartStore(rdb, cfg.CartTTL), detail),
		Checkout: services.NewCheckoutService(
			libs.NewPaymentProvider(cfg.PaymentAPIURL, cfg.PaymentAPIKey, cfg.PaymentTimeout),
			checkoutRepo,
			detail,
			mailer,
			services.CheckoutConfig{
				Currency:          cfg.Currency,
				DefaultSuccessURL: cfg.BaseURL + "/checkout/success",
				WebhookSecret:     []byte(cfg.PaymentWebhookKey),
			},
		),
		Auth:  services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.JWTExpiry),
		Admin: services.NewProductAdminService(productRepo, uploader, catalog),
	}
}

func SetupRoutes(router *gin.Engine, cfg *config.Config, svc *Services) {
	pageCtrl := controllers.NewPageController(svc.Pages)
	productCtrl := controllers.NewProductController(svc.Catalog, svc.Detail)
	blogCtrl := controllers.NewBlogController(svc.Blog)
	cartCtrl := controllers.NewCartController(svc.Cart)
	checkoutCtrl := controllers.NewCheckoutController(svc.Checkout, svc.Cart)
	authCtrl := controllers.NewAuthController(svc.Auth)
	adminProductCtrl := controllers.NewAdminProductController(svc.Admin, cfg.MaxUploadSize)

	jwtSecret := []byte(cfg.JWTSecret)
	cartSession := middleware.CartSession(middleware.NewCartCookie([]byte(cfg.SessionSecret), cfg.AppEnv == "production"))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/pages/home", pageCtrl.GetHome)
	router.GET("/pages/blog", pageCtrl.GetBlog)
	router.GET("/pages/shop", pageCtrl.GetShop)
	router.GET("/pages/shop/:id", pageCtrl.GetProduct)
	router.POST("/contact", pageCtrl.Subscribe)

	router.GET("/categories", productCtrl.GetAllCategories)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)

	router.GET("/blog/posts", blogCtrl.GetPosts)
	router.GET("/blog/posts/:slug", blogCtrl.GetPost)

	router.POST("/auth/login", authCtrl.Login)

	cart := router.Group("/cart")
	cart.Use(cartSession)
	{
		cart.GET("", cartCtrl.GetCart)
		cart.DELETE("", cartCtrl.ClearCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items/:id", cartCtrl.UpdateItem)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.PATCH("/panel", cartCtrl.SetPanel)
	}

	router.POST("/checkout/webhook", checkoutCtrl.Webhook)
	router.GET("/checkout/sessions/:id", checkoutCtrl.GetSession)

	checkout := router.Group("/checkout")
	checkout.Use(cartSession)
	{
		checkout.POST("", checkoutCtrl.Checkout)
		checkout.POST("/buy-now", checkoutCtrl.BuyNow)
		checkout.GET("/status", checkoutCtrl.GetStatus)
	}

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(jwtSecret))
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.AdminMiddleware())
	{
		admin.POST("/products", adminProductCtrl.CreateProduct)
		admin.PATCH("/products/:id", adminProductCtrl.UpdateProduct)
		admin.DELETE("/products/:id", adminProductCtrl.DeleteProduct)
		admin.POST("/products/:id/image", adminProductCtrl.UploadImage)

		admin.POST("/blog/posts", blogCtrl.CreatePost)
	}
}
