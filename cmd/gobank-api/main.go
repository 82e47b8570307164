package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"gobank/config"
	"gobank/controllers"
	"gobank/routes"
	"gobank/services/address"
	"gobank/store"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	dir := config.App.Storage.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		config.Logger.Fatalf("Failed to create storage dir %s: %v", dir, err)
	}

	ctrl := controllers.New(
		store.NewPersonStore(dir),
		store.NewClientStore(dir),
		store.NewAccountStore(dir),
		address.NewResolver(config.App.ViaCEP.BaseURL, config.ViaCEPTimeout()),
	)

	app := fiber.New()
	routes.SetupRouter(app, ctrl)

	if err := app.Listen(config.App.Server.Addr); err != nil {
		config.Logger.Fatalf("Server stopped: %v", err)
	}
}
