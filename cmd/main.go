// Package main is the entry point for the pizza-cart application.
//
// @title           Pizza Cart API
// @version         1.0.0
// @description     Session-scoped shopping cart for the pizza constructor.
//
//	Each client session owns one cart. Carts are priced against the catalog and
//	submitted to the order backend.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/pizza-cart
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for catalog administration.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token issued by the auth service. Attaches orders to the user.
//
// @tag.name        Cart
// @tag.description Session cart operations
//
// @tag.name        Catalog
// @tag.description Pizza catalog
//
// @tag.name        Orders
// @tag.description Order history
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/pizza-cart/docs" // swagger docs

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/app"
)

func main() {
	// .env is optional; real environment variables take precedence
	envErr := godotenv.Load()

	cfg := config.Load()

	application := app.InitializeApp(cfg)
	if envErr == nil {
		log.Debug().Msg("Loaded environment from .env")
	}

	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
