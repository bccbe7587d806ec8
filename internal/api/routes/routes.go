// server/internal/api/routes/routes.go
package routes

import (
	"greenscape-api-server/config"
	"greenscape-api-server/internal/api/handlers"
	"greenscape-api-server/internal/api/middleware"
	"greenscape-api-server/internal/auth"
	"greenscape-api-server/internal/notify"
	"greenscape-api-server/internal/s3"
	"greenscape-api-server/internal/socket"
	"greenscape-api-server/internal/whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires every handler into one gin engine. The legacy split
// between the shop backend and the employee backend is gone; both URL
// trees are served here.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	jwtManager *auth.Manager,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	notifier notify.Notifier,
	whatsAppClient *whatsapp.Client,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	itemHandler := &handlers.ItemHandler{DB: db}
	machineryHandler := &handlers.MachineryHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db, Notifier: notifier}
	rentalHandler := &handlers.RentalHandler{DB: db}
	driverHandler := &handlers.DriverHandler{DB: db}
	vehicleHandler := &handlers.VehicleHandler{DB: db}
	assignmentHandler := &handlers.AssignmentHandler{DB: db, Cfg: cfg, Notifier: notifier}
	paymentHandler := &handlers.PaymentHandler{DB: db, S3Uploader: s3Uploader, Notifier: notifier}
	accidentHandler := &handlers.AccidentHandler{DB: db, S3Uploader: s3Uploader, Notifier: notifier}
	notificationHandler := &handlers.NotificationHandler{DB: db}
	employeeHandler := &handlers.EmployeeHandler{DB: db, S3Uploader: s3Uploader, WhatsApp: whatsAppClient}
	userHandler := &handlers.UserHandler{DB: db, JWT: jwtManager}
	ratingHandler := &handlers.RatingHandler{DB: db}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWT: jwtManager}

	api := router.Group("/api")
	{
		api.GET("/ws", webSocketHandler.ServeWs)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", userHandler.Login)

			profile := authGroup.Group("/profile")
			profile.Use(middleware.Authenticate(jwtManager))
			{
				profile.GET("", userHandler.GetProfile)
				profile.PUT("", userHandler.UpdateProfile)
			}
		}

		// Shop browsing and cart are public; the storefront runs on a
		// session id, not a login.
		items := api.Group("/items")
		{
			items.GET("", itemHandler.GetAllItems)
			items.GET("/:id", itemHandler.GetItemByID)
		}

		cart := api.Group("/cart")
		{
			cart.GET("/:sessionId", cartHandler.GetCart)
			cart.POST("/:sessionId/items", cartHandler.AddToCart)
			cart.PUT("/:sessionId/items/:itemId", cartHandler.UpdateItemQuantity)
			cart.DELETE("/:sessionId/items/:itemId", cartHandler.RemoveItem)
			cart.DELETE("/:sessionId", cartHandler.ClearCart)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetAllOrders)
			orders.GET("/pending", orderHandler.GetPendingOrders)
			orders.GET("/paid", orderHandler.GetPaidOrders)
			orders.GET("/:id", orderHandler.GetOrderByID)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}

		machinery := api.Group("/machinery")
		{
			machinery.GET("", machineryHandler.GetAllMachinery)
			machinery.GET("/:id", machineryHandler.GetMachineryByID)
		}

		rentals := api.Group("/rental-orders")
		{
			rentals.POST("", rentalHandler.CreateRental)
			rentals.GET("", rentalHandler.GetAllRentals)
			rentals.GET("/:id", rentalHandler.GetRentalByID)
			rentals.PUT("/:id/status", rentalHandler.UpdateRentalStatus)
			rentals.DELETE("/:id", rentalHandler.DeleteRental)
		}

		rating := api.Group("/rating")
		{
			rating.POST("/public/:userId", ratingHandler.RateUser)
			rating.GET("/landscapers/grades", ratingHandler.GetLandscaperGrades)

			authedRating := rating.Group("")
			authedRating.Use(middleware.Authenticate(jwtManager))
			{
				authedRating.POST("/:userId", ratingHandler.RateUser)
			}
		}

		// Employee onboarding is management-only except for filing an
		// application.
		employees := api.Group("/employees")
		{
			employees.POST("", employeeHandler.CreateApplication)

			managed := employees.Group("")
			managed.Use(middleware.Authenticate(jwtManager))
			managed.Use(middleware.Authorize("admin", "management"))
			{
				managed.GET("", employeeHandler.GetAllApplications)
				managed.GET("/:id", employeeHandler.GetApplicationByServiceNum)
				managed.PUT("/:id/approve", employeeHandler.ApproveApplication)
				managed.PUT("/:id/reject", employeeHandler.RejectApplication)
				managed.DELETE("/:id", employeeHandler.DeleteApplication)
			}
		}

		mountDriverRoutes(api.Group("/drivers"), driverHandler, assignmentHandler, accidentHandler)

		// Inventory and machinery management require a staff login.
		admin := api.Group("/admin")
		admin.Use(middleware.Authenticate(jwtManager))
		admin.Use(middleware.Authorize("admin", "management"))
		{
			admin.POST("/items", itemHandler.CreateItem)
			admin.PUT("/items/:id", itemHandler.UpdateItem)
			admin.DELETE("/items/:id", itemHandler.DeleteItem)

			admin.POST("/machinery", machineryHandler.CreateMachinery)
			admin.PUT("/machinery/:id", machineryHandler.UpdateMachinery)
			admin.DELETE("/machinery/:id", machineryHandler.DeleteMachinery)
		}
	}

	// The delivery tree kept its legacy non-/api paths; the second
	// storefront still calls these directly. Newer clients use the /api
	// alias mounted above.
	mountDriverRoutes(router.Group("/drivers"), driverHandler, assignmentHandler, accidentHandler)

	vehicles := router.Group("/vehicles")
	{
		vehicles.POST("", vehicleHandler.CreateVehicle)
		vehicles.GET("", vehicleHandler.GetAllVehicles)
		vehicles.GET("/available", vehicleHandler.GetAvailableVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicleByID)
		vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
		vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
	}

	assignments := router.Group("/delivery-assignments")
	{
		assignments.POST("", assignmentHandler.CreateAssignment)
		assignments.GET("", assignmentHandler.GetAllAssignments)
		assignments.GET("/export", assignmentHandler.ExportAssignmentsCSV)
		assignments.GET("/:id", assignmentHandler.GetAssignmentByID)
		assignments.PUT("/:id/status", assignmentHandler.UpdateAssignmentStatus)
	}

	payments := router.Group("/item-payments")
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("", paymentHandler.GetAllPayments)
		payments.GET("/order/:id", paymentHandler.GetPaymentsByOrder)
	}

	accidents := router.Group("/accident-reports")
	{
		accidents.POST("", accidentHandler.CreateReport)
		accidents.GET("", accidentHandler.GetAllReports)
		accidents.GET("/:id", accidentHandler.GetReportByID)
		accidents.PUT("/:id/status", accidentHandler.UpdateReportStatus)
	}

	notifications := router.Group("/notifications")
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
		notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
	}

	return router
}

func mountDriverRoutes(
	g *gin.RouterGroup,
	driverHandler *handlers.DriverHandler,
	assignmentHandler *handlers.AssignmentHandler,
	accidentHandler *handlers.AccidentHandler,
) {
	g.POST("", driverHandler.CreateDriver)
	g.GET("", driverHandler.GetAllDrivers)
	g.GET("/available", driverHandler.GetAvailableDrivers)
	g.GET("/:id", driverHandler.GetDriverByID)
	g.GET("/:id/deliveries", assignmentHandler.GetDriverDeliveries)
	g.GET("/:id/accidents", accidentHandler.GetReportsByDriver)
	g.PUT("/:id", driverHandler.UpdateDriver)
	g.DELETE("/:id", driverHandler.DeleteDriver)
}
