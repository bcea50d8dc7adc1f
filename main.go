package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/sheharyarIshfaq/rest-hunt-backend/config"
	"github.com/sheharyarIshfaq/rest-hunt-backend/routes"
	"github.com/sheharyarIshfaq/rest-hunt-backend/scheduler"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/storage"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	redisClient := storage.NewRedis(cfg)

	objects, err := storage.NewObjectStore(cfg)
	if err != nil {
		log.Fatalf("object store: %v", err)
	}

	stores := storage.NewStores(db)
	txRunner := storage.NewTxRunner(db)

	tokens := utils.NewTokenManager(redisClient, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)

	bookingService := services.NewBookingService(stores, txRunner)
	earningService := services.NewEarningService(stores)
	withdrawalService := services.NewWithdrawalService(stores, txRunner, cfg.WithdrawalBalanceSource)
	paymentService := services.NewPaymentService(cfg.StripeSecretKey, cfg.PaymentCurrency)

	userHandler := routes.NewUserHandler(db, tokens, objects)
	propertyHandler := routes.NewPropertyHandler(db, objects)
	bookingHandler := routes.NewBookingHandler(bookingService, paymentService)
	earningHandler := routes.NewEarningHandler(earningService)
	withdrawalHandler := routes.NewWithdrawalHandler(withdrawalService)
	favouriteHandler := routes.NewFavouriteHandler(db)
	recentlyViewedHandler := routes.NewRecentlyViewedHandler(db)
	reviewHandler := routes.NewReviewHandler(db)
	chatHandler := routes.NewChatHandler(db)

	sched, err := scheduler.New(earningService, cfg.EarningSweepSchedule)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.AccessTokenSecret))
	accessTokenVerifier.WithDefaultBlocklist()
	auth := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.RefreshTokenSecret))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshAuth := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput routes.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	user := app.Party("/api/users")
	{
		user.Post("/register", userHandler.Register)
		user.Post("/login", userHandler.Login)
		user.Post("/refresh", refreshAuth, userHandler.RefreshToken)
		user.Get("/me", auth, utils.UserIDFromTokenMiddleware, userHandler.GetUser)
		user.Patch("/me", auth, utils.UserIDFromTokenMiddleware, userHandler.UpdateUser)
		user.Post("/me/profile-picture", auth, utils.UserIDFromTokenMiddleware, userHandler.UploadProfilePicture)
		user.Get("/", auth, utils.AdminOnlyMiddleware, userHandler.GetAllUsers)
	}

	property := app.Party("/api/properties")
	{
		property.Get("/", propertyHandler.GetProperties)
		property.Get("/{id:uint}", propertyHandler.GetProperty)
		property.Get("/{propertyId:uint}/reviews", reviewHandler.GetPropertyReviews)

		property.Post("/", auth, utils.OwnerOnlyMiddleware, propertyHandler.CreateProperty)
		property.Get("/owner", auth, utils.OwnerOnlyMiddleware, propertyHandler.GetOwnerProperties)
		property.Patch("/{id:uint}", auth, utils.OwnerOnlyMiddleware, propertyHandler.UpdateProperty)
		property.Delete("/{id:uint}", auth, utils.OwnerOnlyMiddleware, propertyHandler.DeleteProperty)
		property.Post("/{id:uint}/rooms", auth, utils.OwnerOnlyMiddleware, propertyHandler.AddRoom)
		property.Delete("/{id:uint}/rooms/{roomId:uint}", auth, utils.OwnerOnlyMiddleware, propertyHandler.DeleteRoom)

		property.Patch("/{id:uint}/status", auth, utils.AdminOnlyMiddleware, propertyHandler.UpdatePropertyStatus)
	}

	booking := app.Party("/api/bookings", auth, utils.UserIDFromTokenMiddleware)
	{
		booking.Post("/", bookingHandler.CreateBooking)
		booking.Post("/payment-intent", bookingHandler.CreatePayment)
		booking.Get("/", bookingHandler.GetBookings)
		booking.Get("/{id:uint}", bookingHandler.GetBookingByID)
		booking.Patch("/{id:uint}", bookingHandler.UpdateBooking)
		booking.Delete("/{id:uint}", utils.AdminOnlyMiddleware, bookingHandler.DeleteBooking)
	}

	earning := app.Party("/api/earnings")
	{
		earning.Get("/", auth, utils.OwnerOnlyMiddleware, earningHandler.GetEarnings)
		earning.Post("/sweep", auth, utils.AdminOnlyMiddleware, earningHandler.RunSweep)
	}

	withdrawal := app.Party("/api/withdrawals")
	{
		withdrawal.Post("/", auth, utils.OwnerOnlyMiddleware, withdrawalHandler.CreateWithdrawal)
		withdrawal.Get("/", auth, utils.OwnerOnlyMiddleware, withdrawalHandler.GetWithdrawals)
		withdrawal.Get("/all", auth, utils.AdminOnlyMiddleware, withdrawalHandler.GetAllWithdrawals)
		withdrawal.Patch("/{id:uint}/approve", auth, utils.AdminOnlyMiddleware, withdrawalHandler.ApproveWithdrawal)
		withdrawal.Patch("/{id:uint}/reject", auth, utils.AdminOnlyMiddleware, withdrawalHandler.RejectWithdrawal)
	}

	favourite := app.Party("/api/favourites", auth, utils.UserIDFromTokenMiddleware)
	{
		favourite.Post("/", favouriteHandler.AddFavourite)
		favourite.Get("/", favouriteHandler.GetFavourites)
		favourite.Delete("/{propertyId:uint}", favouriteHandler.RemoveFavourite)
	}

	recentlyViewed := app.Party("/api/recently-viewed", auth, utils.UserIDFromTokenMiddleware)
	{
		recentlyViewed.Post("/", recentlyViewedHandler.AddRecentlyViewed)
		recentlyViewed.Get("/", recentlyViewedHandler.GetRecentlyViewed)
	}

	review := app.Party("/api/reviews", auth, utils.UserIDFromTokenMiddleware)
	{
		review.Post("/", reviewHandler.CreateReview)
		review.Get("/booking/{bookingId:uint}", reviewHandler.GetBookingReview)
		review.Delete("/{id:uint}", reviewHandler.DeleteReview)
	}

	chat := app.Party("/api/chats", auth, utils.UserIDFromTokenMiddleware)
	{
		chat.Get("/", chatHandler.GetChats)
		chat.Get("/{id:uint}/messages", chatHandler.GetMessages)
		chat.Post("/messages", chatHandler.SendMessage)
		chat.Post("/enquiries", chatHandler.AddEnquiry)
	}

	app.Listen(":" + cfg.Port)
}
