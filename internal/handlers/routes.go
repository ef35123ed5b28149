package handlers

import (
	"github.com/arzan03/doctasks/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp wires the task and collection routes. A non-empty jwtSecret puts
// the task routes behind the admin guard.
func NewApp(tasks *TaskHandler, collections *CollectionHandler, jwtSecret string) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	guard := func(c *fiber.Ctx) error { return c.Next() }
	if jwtSecret != "" {
		guard = middleware.AdminMiddleware(jwtSecret)
	}

	app.Get("/tasks", tasks.ListTasks)
	app.Post("/tasks/:name", guard, tasks.RunTask)
	app.Post("/run", guard, tasks.RunAll)

	app.Get("/collections/:name", guard, collections.ListDocuments)
	return app
}
