package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/config"
	"github.com/BruksfildServices01/salon-pos/internal/events"
	"github.com/BruksfildServices01/salon-pos/internal/gateway"
	"github.com/BruksfildServices01/salon-pos/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-pos/internal/infra/repository"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/metrics"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	"github.com/BruksfildServices01/salon-pos/internal/storage"
	ucAppointment "github.com/BruksfildServices01/salon-pos/internal/usecase/appointment"
	ucCheckout "github.com/BruksfildServices01/salon-pos/internal/usecase/checkout"
	"github.com/BruksfildServices01/salon-pos/internal/usecase/inventory"
	ucReport "github.com/BruksfildServices01/salon-pos/internal/usecase/report"
	ucStylist "github.com/BruksfildServices01/salon-pos/internal/usecase/stylist"
)

// Infra are the process-wide collaborators built by main.
type Infra struct {
	Locker  lock.Locker
	Store   storage.Store
	Gateway gateway.Gateway
	Events  events.Publisher
	Audit   *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	rules := cfg.Rules
	hours := rules.Hours()

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	stylistRepo := infraRepo.NewStylistGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)
	productRepo := infraRepo.NewProductGormRepository(db)
	salesRepo := infraRepo.NewSalesReportRepository(db)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, infra.Locker, hours, infra.Audit, infra.Events)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, hours)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		ucAppointment.NewUpdateAppointment(appointmentRepo, infra.Locker, hours, infra.Audit),
		ucAppointment.NewCancelAppointment(appointmentRepo, infra.Audit),
		ucAppointment.NewCompleteAppointment(appointmentRepo, infra.Audit),
		ucAppointment.NewDeleteAppointment(appointmentRepo, infra.Audit),
		ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ucAppointment.NewListAppointmentsByMonth(appointmentRepo),
		ucAppointment.NewGetDayView(appointmentRepo, rules.Grid()),
		availabilityUC,
	)

	// ======================================================
	// USE CASES (STYLISTS / CHECKOUT / INVENTORY / REPORTS)
	// ======================================================
	stylistSubHandler := handlers.NewStylistSubHandler(
		stylistRepo,
		ucStylist.NewAddBreak(stylistRepo, infra.Audit),
		ucStylist.NewRemoveBreak(stylistRepo, infra.Audit),
		ucStylist.NewUploadAvatar(stylistRepo, infra.Store, infra.Audit),
		rules.Upload.MaxAvatarBytes,
	)

	checkoutDeps := ucCheckout.Deps{
		Repo:       orderRepo,
		Locker:     infra.Locker,
		Gateway:    infra.Gateway,
		GSTPercent: rules.Tax.GSTPercent,
		Audit:      infra.Audit,
		Events:     infra.Events,
	}
	orderHandler := handlers.NewOrderHandler(
		orderRepo,
		ucCheckout.NewQuoteOrder(orderRepo, rules.Tax.GSTPercent),
		ucCheckout.NewWalkInCheckout(checkoutDeps),
		ucCheckout.NewAppointmentCheckout(checkoutDeps),
		ucCheckout.NewRecordPayment(checkoutDeps),
		ucCheckout.NewCancelOrder(checkoutDeps),
		ucReport.NewExportOrders(orderRepo),
	)

	inventoryHandler := handlers.NewInventoryHandler(
		inventory.NewImportStock(productRepo, infra.Store, infra.Audit, infra.Events),
		rules.Upload.MaxSpreadsheetBytes,
	)
	reportHandler := handlers.NewReportHandler(ucReport.NewGetSalesReport(orderRepo, salesRepo))

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db, infra.Audit)
	scheduleHandler := handlers.NewScheduleHandler(rules.Grid(), rules.Tax.GSTPercent)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, createAppointmentUC, availabilityUC)

	stylists := handlers.NewStylistHandler(db, infra.Audit)
	clients := handlers.NewClientHandler(db, infra.Audit)
	collections := handlers.NewCollectionHandler(db, infra.Audit)
	services := handlers.NewServiceHandler(db, infra.Audit)
	products := handlers.NewProductHandler(db, infra.Audit)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC BOOKING
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/catalog", publicHandler.Catalog)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/schedule/slots", scheduleHandler.Slots)

			crud(secured, "/stylists", stylists)
			crud(secured, "/clients", clients)
			crud(secured, "/service-collections", collections)
			crud(secured, "/services", services)
			crud(secured, "/products", products)

			secured.GET("/stylists/:id/breaks", stylistSubHandler.ListBreaks)
			secured.POST("/stylists/:id/breaks", stylistSubHandler.AddBreak)
			secured.DELETE("/stylists/:id/breaks/:index", stylistSubHandler.RemoveBreak)
			secured.PUT("/stylists/:id/avatar", stylistSubHandler.UploadAvatar)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.POST("/appointments/:id/checkout", orderHandler.CheckoutAppointment)
			secured.GET("/day-view", appointmentHandler.DayView)
			secured.GET("/availability", appointmentHandler.Availability)

			// ------------------------------
			// CHECKOUT / ORDERS
			// ------------------------------
			secured.POST("/checkout/quote", orderHandler.Quote)
			secured.POST("/orders/walk-in", orderHandler.WalkIn)
			secured.GET("/orders", orderHandler.List)
			secured.GET("/orders/export", orderHandler.Export)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.POST("/orders/:id/payments", orderHandler.RecordPayment)
			secured.PATCH("/orders/:id/cancel", orderHandler.Cancel)

			// ------------------------------
			// INVENTORY / REPORTS / AUDIT
			// ------------------------------
			secured.POST("/inventory/parse", inventoryHandler.Parse)
			secured.POST("/inventory/import", inventoryHandler.Import)
			secured.GET("/reports/sales", reportHandler.Sales)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

type crudRoutes interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func crud(g *gin.RouterGroup, path string, h crudRoutes) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Get)
	g.PATCH(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}
