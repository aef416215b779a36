package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/categories"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/deals"
	"storefront/internal/kafka"
	"storefront/internal/orders"
	"storefront/internal/products"
	"storefront/internal/redisx"
	"storefront/internal/wishlist"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	pool, err := db.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:         cfg.JWTIssuer,
		AccessSecret:   cfg.JWTAccessSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTLMin:   cfg.AccessTokenTTLMin,
		RefreshTTLDays: cfg.RefreshTokenTTLDays,
	})

	authHandler := auth.NewHandler(auth.Dependencies{
		JWT:     jwtMgr,
		Users:   auth.NewUserRepo(pool),
		Refresh: auth.NewRefreshRepo(pool),
	})

	// Catalog repos/handlers
	catRepo := categories.NewRepo(pool)
	catHandler := categories.NewHandler(catRepo)

	prodRepo := products.NewRepo(pool)
	prodHandler := products.NewHandler(prodRepo)

	dealRepo := deals.NewRepo(pool)
	dealHandler := deals.NewHandler(dealRepo)

	// Cart storage: Redis when configured, in-process otherwise.
	var cartStorage cart.Storage = cart.NewMemoryStorage()
	var wishHandler *wishlist.Handler
	if cfg.RedisAddr != "" {
		rdb, err := redisx.New(cfg.RedisAddr)
		if err != nil {
			log.Fatal("connect redis", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		cartStorage = cart.NewRedisStorage(rdb)
		wishHandler = wishlist.NewHandler(wishlist.NewStore(rdb))
	} else {
		log.Warn("REDIS_ADDR not set; carts will not survive a restart")
	}

	cartStore := cart.NewStore(cartStorage, log)
	cartHandler := cart.NewHandler(cartStore, prodRepo, dealRepo)

	// Order event publishing is optional.
	var publisher *orders.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, log)
		defer func() { _ = producer.Close() }()
		publisher = orders.NewPublisher(producer, cfg.ServiceName, log)
	}

	orderRepo := orders.NewRepo(pool)
	orderHandler := orders.NewHandler(orderRepo, cartStore, publisher)

	r := gin.Default()

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Public catalog routes (no login required)
	api.GET("/categories", catHandler.ListPublic)
	api.GET("/products", prodHandler.ListPublic)
	api.GET("/products/:id", prodHandler.GetPublic)
	api.GET("/products/:id/related", prodHandler.ListRelated)
	api.GET("/deals", dealHandler.ListActive)
	api.GET("/deals/banner", dealHandler.ListBanner)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr))
	{
		protected.GET("/me", authHandler.Me)
		protected.PATCH("/me", authHandler.UpdateMe)

		protected.GET("/cart", cartHandler.GetMyCart)
		protected.POST("/cart/items", cartHandler.AddItem)
		protected.PATCH("/cart/items", cartHandler.UpdateQty)
		protected.DELETE("/cart/items", cartHandler.RemoveItem)
		protected.DELETE("/cart", cartHandler.ClearCart)

		protected.POST("/orders", orderHandler.Submit)
		protected.GET("/orders", orderHandler.ListMine)
		protected.GET("/orders/:id", orderHandler.GetMine)

		if wishHandler != nil {
			protected.GET("/wishlist", wishHandler.GetMine)
			protected.POST("/wishlist", wishHandler.Add)
			protected.DELETE("/wishlist", wishHandler.Remove)
		}
	}

	log.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
