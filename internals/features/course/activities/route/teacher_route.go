// file: internals/features/course/activities/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityController "kampusku_backend/internals/features/course/activities/controller"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

// Rute TEACHER/ADMIN (guard role di group /api/t)
func ActivityTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := activityController.NewActivityController(db, blob)

	g := r.Group("/activities")
	g.Post("/", ctrl.Create)
	g.Patch("/:id", ctrl.Patch)
	g.Delete("/:id", ctrl.Delete)
	g.Put("/:id/category", ctrl.Classify)
	g.Get("/:id/completion", ctrl.CompletionRate)
	g.Get("/:id", ctrl.GetByID)

	r.Get("/units/:unit_id/activities", ctrl.ListByUnit)
}
