// File: sokoni/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sokoni/config"
	"sokoni/cron"
	"sokoni/database"
	bookingRepoPkg "sokoni/database/repository/booking"
	catalogRepoPkg "sokoni/database/repository/catalog"
	orderRepoPkg "sokoni/database/repository/order"
	quoteRepoPkg "sokoni/database/repository/quote"
	recordsRepoPkg "sokoni/database/repository/records"
	userRepoPkg "sokoni/database/repository/user"
	"sokoni/handlers"
	"sokoni/middleware"
	"sokoni/routes"
	"sokoni/services/booking"
	"sokoni/services/cart"
	"sokoni/services/catalog"
	"sokoni/services/order"
	"sokoni/services/quote"
	"sokoni/services/tasks"
	"sokoni/services/user"
	"sokoni/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	usersRepo := userRepoPkg.NewMongoUserRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	bookingsRepo := bookingRepoPkg.NewMongoBookingRepo()
	ordersRepo := orderRepoPkg.NewMongoOrderRepo()
	quotesRepo := quoteRepoPkg.NewMongoQuoteRepo()
	recordsRepo := recordsRepoPkg.NewMongoRecordsRepo()

	// Lifecycle event queue: producer here, consumer in the worker.
	publisher := tasks.NewAsynqPublisher()
	defer publisher.Close()
	cron.InitEventWorker(recordsRepo)

	// Services.
	userService := &user.DefaultUserService{
		Repo:      usersRepo,
		AuthCache: utils.GetAuthCacheClient(),
		Logger:    logger,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:   catalogRepo,
		Logger: logger,
	}
	cartService := &cart.RedisCartService{
		Client: utils.GetCartClient(),
	}
	bookingService := &booking.DefaultBookingService{
		Repo:           bookingsRepo,
		Catalog:        catalogRepo,
		Events:         publisher,
		Logger:         logger,
		CommissionRate: config.AppConfig.CommissionRate,
		TaxRate:        config.AppConfig.TaxRate,
	}
	orderService := &order.DefaultOrderService{
		Repo:         ordersRepo,
		Catalog:      catalogRepo,
		Users:        usersRepo,
		Cart:         cartService,
		Payments:     &order.StripePaymentIntents{},
		Events:       publisher,
		Logger:       logger,
		TaxRate:      config.AppConfig.TaxRate,
		ShippingCost: config.AppConfig.FlatShippingCost,
	}
	quoteService := &quote.DefaultQuoteService{
		Repo:    quotesRepo,
		Catalog: catalogRepo,
		Logger:  logger,
	}

	// Handlers.
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	notificationHandler := handlers.NewNotificationHandler(recordsRepo)
	adminHandler := handlers.NewAdminHandler(userService, bookingService, recordsRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Auth endpoints.
		SignUpHandler:  authHandler.SignUp,
		SignInHandler:  authHandler.SignIn,
		SignOutHandler: authHandler.SignOut,

		// Profile and address endpoints.
		GetProfileHandler:    userHandler.GetProfile,
		UpdateProfileHandler: userHandler.UpdateProfile,
		AddAddressHandler:    userHandler.AddAddress,
		UpdateAddressHandler: userHandler.UpdateAddress,
		RemoveAddressHandler: userHandler.RemoveAddress,

		// Catalog endpoints.
		CreateServiceHandler:   catalogHandler.CreateService,
		UpdateServiceHandler:   catalogHandler.UpdateService,
		GetServiceHandler:      catalogHandler.GetService,
		BrowseServicesHandler:  catalogHandler.BrowseServices,
		ListOwnServicesHandler: catalogHandler.ListOwnServices,
		CreateProductHandler:   catalogHandler.CreateProduct,
		UpdateProductHandler:   catalogHandler.UpdateProduct,
		GetProductHandler:      catalogHandler.GetProduct,
		BrowseProductsHandler:  catalogHandler.BrowseProducts,
		ListOwnProductsHandler: catalogHandler.ListOwnProducts,

		// Cart endpoints.
		GetCartHandler:        cartHandler.GetCart,
		AddCartLineHandler:    cartHandler.AddLine,
		UpdateCartLineHandler: cartHandler.UpdateQuantity,
		RemoveCartLineHandler: cartHandler.RemoveLine,
		ClearCartHandler:      cartHandler.ClearCart,

		// Booking endpoints.
		CreateBookingHandler:     bookingHandler.Create,
		TransitionBookingHandler: bookingHandler.Transition,
		GetBookingHandler:        bookingHandler.Get,
		ListBookingsHandler:      bookingHandler.ListMine,

		// Order endpoints.
		CheckoutHandler:        orderHandler.Checkout,
		TransitionOrderHandler: orderHandler.Transition,
		GetOrderHandler:        orderHandler.Get,
		ListOrdersHandler:      orderHandler.ListMine,

		// Quote endpoints.
		RequestQuoteHandler: quoteHandler.Request,
		RespondQuoteHandler: quoteHandler.Respond,
		DecideQuoteHandler:  quoteHandler.Decide,
		GetQuoteHandler:     quoteHandler.Get,
		ListQuotesHandler:   quoteHandler.ListMine,

		// Notification endpoints.
		ListNotificationsHandler: notificationHandler.List,
		MarkNotificationHandler:  notificationHandler.MarkRead,

		// Admin endpoints.
		AdminListUsersHandler:       adminHandler.ListUsers,
		AdminOverrideBookingHandler: adminHandler.OverrideBookingStatus,
		ListEarningsHandler:         adminHandler.ListEarnings,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
