// file: internals/features/course/deposits/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	depositController "kampusku_backend/internals/features/course/deposits/controller"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

// Rute TEACHER/ADMIN (guard role di group /api/t)
func DepositTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := depositController.NewDepositController(db, blob)

	r.Get("/activities/:id/deposits", ctrl.ListByActivity)
	r.Get("/activities/:id/archive", ctrl.ExportBulk)

	g := r.Group("/deposits")
	g.Patch("/:id/grade", ctrl.Grade)
	g.Get("/:id/archive", ctrl.ExportOne)
}
