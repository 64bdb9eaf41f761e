package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/hireflow/internal/config"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// bodyLimit leaves room for the multipart envelope around a maximum size resume
const bodyLimit = filex.MaxFileSize + 1<<20

func main() {
	// 1. Configuration and logger
	cfg := config.Load()
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	if err := cfg.Server.Validate(); err != nil {
		logx.Fatalf("Invalid server configuration: %v", err)
	}
	logx.Info("Starting applications API server...")

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Hireflow Applications API",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          applicationapi.ErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		deps := container.Healthy(c.Context())
		body := fiber.Map{"status": "ok"}
		for name, ok := range deps {
			body[name] = ok
		}
		return c.JSON(body)
	})

	// 6. Register Routes
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers)

	// 7. Start Server with Graceful Shutdown
	port := cfg.Server.Port

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}
