// file: internals/features/course/deposits/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	depositController "kampusku_backend/internals/features/course/deposits/controller"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

// Rute STUDENT (group /api/u) - siklus setoran milik sendiri
func DepositUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := depositController.NewDepositController(db, blob)

	g := r.Group("/activities/:id/deposit")
	g.Post("/", ctrl.Submit)
	g.Put("/", ctrl.Replace)
	g.Delete("/", ctrl.Withdraw)
	g.Get("/", ctrl.GetMine)
}
