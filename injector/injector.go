//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/deliveries"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/services"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
)

// Application represents the main application container for truck-billing
type Application struct {
	HealthHandler      *deliveries.HealthHandler
	JobHandler         *deliveries.JobHandler
	InvoiceHandler     *deliveries.InvoiceHandler
	PriceMatrixHandler *deliveries.PriceMatrixHandler
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	app.HealthHandler.RegisterRoutes(router)
	app.JobHandler.RegisterRoutes(router)
	app.InvoiceHandler.RegisterRoutes(router)
	app.PriceMatrixHandler.RegisterRoutes(router)
}

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewValidator,
	infrastructures.NewJSONDocumentRenderer,
	wire.Bind(new(services.DocumentRenderer), new(*infrastructures.JSONDocumentRenderer)),
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewJobService,
	services.NewAccountingService,
	services.NewInvoiceService,
	services.NewBillingViewService,
	services.NewPriceMatrixService,
	services.NewAuditService,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewJobHandler,
	deliveries.NewInvoiceHandler,
	deliveries.NewPriceMatrixHandler,
	wire.Struct(new(Application), "*"), // This tells Wire to build the Application struct
)

// Reminder job providers
var reminderSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewTelegramClient,
	services.NewReminderService,
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		handlerSet,
	)
	return &Application{}, nil // Wire will populate the Application struct based on handlerSet
}

// InitializeReminder wires the standalone morning reminder job
func InitializeReminder() (*services.ReminderService, error) {
	wire.Build(reminderSet)
	return &services.ReminderService{}, nil
}
