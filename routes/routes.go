package routes

import (
	"os"

	"restaurant-reservation/constants"
	"restaurant-reservation/controllers/analytics"
	"restaurant-reservation/controllers/auth"
	"restaurant-reservation/controllers/notification"
	"restaurant-reservation/controllers/reservation"
	"restaurant-reservation/controllers/slot"
	"restaurant-reservation/controllers/user"
	"restaurant-reservation/events"
	"restaurant-reservation/logger"
	"restaurant-reservation/metrics"
	"restaurant-reservation/middleware"
	notificationService "restaurant-reservation/services/notification"
	reservationService "restaurant-reservation/services/reservation"
	slotService "restaurant-reservation/services/slot"
	"restaurant-reservation/session"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	sessions := session.New()
	middleware.UseSessionStore(sessions)

	deliveryLogger := logger.NewAsyncDeliveryLogger(db)
	go deliveryLogger.ProcessLog()

	bus := events.NewBus()
	dispatcher := notificationService.NewDispatcher(db, deliveryLogger)
	bus.Subscribe(dispatcher)

	// Mirror domain events onto a broker when one is configured.
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		publisher, err := events.NewAMQPPublisher(amqpURL, "reservations")
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", err)
		} else {
			bus.Subscribe(publisher)
		}
	}

	reservations := reservationService.NewService(db, bus)
	slots := slotService.NewService(db)

	authController := auth.NewAuthController(db, sessions)
	reservationController := reservation.NewReservationController(reservations)
	slotController := slot.NewSlotController(slots)
	userController := user.NewUserController(db)
	notificationController := notification.NewNotificationController(db, dispatcher)
	analyticsController := analytics.NewAnalyticsController(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/reservations", reservationController.Store)

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAnyPermission())
	authGroup.Get("/profile", authController.Profile)
	authGroup.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Reservation Routes
	===============================================================================*/
	reservationGroup := api.Group("/reservations")

	reservationGroup.Get("/export", middleware.RequirePermissions(
		constants.PermExportData,
	), reservationController.Export)

	reservationGroup.Get("/", middleware.RequirePermissions(
		constants.PermViewReservations,
	), reservationController.List)

	reservationGroup.Get("/:id", middleware.RequirePermissions(
		constants.PermViewReservations,
	), reservationController.Show)

	reservationGroup.Patch("/:id/status", middleware.RequirePermissions(
		constants.PermManageReservations,
	), reservationController.UpdateStatus)

	reservationGroup.Patch("/:id/attendance", middleware.RequirePermissions(
		constants.PermMarkAttendance,
	), reservationController.MarkAttendance)

	reservationGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermManageReservations,
	), reservationController.Delete)

	/*=============================================================================
	| Blocked Slot Routes
	===============================================================================*/
	slotGroup := api.Group("/blocked-slots")

	slotGroup.Get("/", middleware.RequirePermissions(
		constants.PermViewReservations,
	), slotController.List)

	slotGroup.Post("/", middleware.RequirePermissions(
		constants.PermManageSlots,
	), slotController.Block)

	slotGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermManageSlots,
	), slotController.Unblock)

	/*=============================================================================
	| User Management Routes
	===============================================================================*/
	userGroup := api.Group("/users").Use(middleware.RequirePermissions(
		constants.PermManageUsers,
	))
	userGroup.Get("/", userController.List)
	userGroup.Get("/permissions", userController.PermissionCatalog)
	userGroup.Post("/", userController.Create)
	userGroup.Patch("/:id", userController.Update)
	userGroup.Delete("/:id", userController.Delete)

	/*=============================================================================
	| Notification Routes
	===============================================================================*/
	notificationGroup := api.Group("/notifications")

	notificationGroup.Get("/logs", middleware.RequirePermissions(
		constants.PermViewReservations,
		constants.PermSystemAdmin,
	), notificationController.Logs)

	notificationGroup.Get("/configs", middleware.RequirePermissions(
		constants.PermSystemAdmin,
	), notificationController.ListConfigs)

	notificationGroup.Post("/configs", middleware.RequirePermissions(
		constants.PermSystemAdmin,
	), notificationController.SaveConfig)

	notificationGroup.Delete("/configs/:id", middleware.RequirePermissions(
		constants.PermSystemAdmin,
	), notificationController.DeleteConfig)

	notificationGroup.Post("/test", middleware.RequirePermissions(
		constants.PermSystemAdmin,
	), notificationController.TestSend)

	/*=============================================================================
	| Analytics Routes
	===============================================================================*/
	api.Get("/analytics/summary", middleware.RequirePermissions(
		constants.PermViewAnalytics,
	), analyticsController.Summary)
}
