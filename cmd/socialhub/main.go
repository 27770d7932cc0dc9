package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/cache"
	"github.com/socialhubhq/socialhub/internal/pkg/database"
	"github.com/socialhubhq/socialhub/internal/pkg/env"
	"github.com/socialhubhq/socialhub/internal/pkg/jobqueue"
	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
	"github.com/socialhubhq/socialhub/internal/pkg/router"
	"github.com/socialhubhq/socialhub/internal/pkg/webhook"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "0.0.0.0"), env.GetEnv("APP_PORT", "5000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	webhook.Setup(repository.GetGlobalRepositories().Webhook)

	// background workers: webhook dispatch jobs and the realtime fanout loop
	jobqueue.GetManager().Start()
	go realtime.GetHub().Run()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/socialhub to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	app := fiber.New(fiber.Config{
		AppName:   "SocialHub Dashboard API",
		BodyLimit: 10 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     env.GetEnv("CORS_ORIGIN", "http://localhost:3000"),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// fiber metrics
	app.Get("/metrics", monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}
