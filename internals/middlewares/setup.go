// file: internals/middlewares/setup.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"kampusku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global (urutan penting: recovery paling luar)
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}
