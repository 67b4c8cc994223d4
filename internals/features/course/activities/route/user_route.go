// file: internals/features/course/activities/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityController "kampusku_backend/internals/features/course/activities/controller"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

// Rute semua participant ber-JWT (group /api/u)
func ActivityUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := activityController.NewActivityController(db, blob)

	g := r.Group("/activities")
	g.Get("/:id", ctrl.GetByID)
	g.Post("/:id/complete", ctrl.MarkComplete)

	r.Get("/units/:unit_id/activities", ctrl.ListByUnit)
}
