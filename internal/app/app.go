// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/http"
	"github.com/guttosm/pizza-cart/internal/service"
)

// App is the wired application: its router plus everything that must be released on exit.
type App struct {
	Router *gin.Engine

	database  *DatabaseComponents
	services  *ServiceComponents
	messaging *MessagingComponents
	router    *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database, service.DefaultCatalog())
	serviceComponents := InitializeServices(cfg, dbComponents)
	messaging := InitializeMessaging(cfg.Messaging)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, messaging.Publisher, cfg)

	return &App{
		Router:    http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		database:  dbComponents,
		services:  serviceComponents,
		messaging: messaging,
		router:    routerComponents,
	}
}

// Close stops background workers and closes external connections.
func (a *App) Close(ctx context.Context) error {
	a.router.Stop()
	a.services.Stop()
	return errors.Join(a.messaging.Close(), a.database.Close(ctx))
}
