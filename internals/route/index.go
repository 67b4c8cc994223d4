// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/configs"
	activityRoute "kampusku_backend/internals/features/course/activities/route"
	depositRoute "kampusku_backend/internals/features/course/deposits/route"
	helperAuth "kampusku_backend/internals/helpers/auth"
	helperOSS "kampusku_backend/internals/helpers/oss"
	middleware "kampusku_backend/internals/middlewares/auth"
)

// SetupRoutes: dua surface:
//
//	/api/u : semua participant ber-JWT (student view + aksi setoran sendiri)
//	/api/t : teacher/admin (kelola activity, grading, export arsip)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	blob, err := helperOSS.NewOSSBlobServiceFromEnv("uploads")
	if err != nil {
		log.Fatalf("❌ OSS init gagal: %v", err)
	}

	jwt := middleware.AuthJWT(middleware.AuthJWTOpts{
		Secret:              configs.GetEnv("JWT_SECRET", ""),
		AllowCookieFallback: true,
	})

	api := app.Group("/api")

	u := api.Group("/u", jwt)
	activityRoute.ActivityUserRoutes(u, db, blob)
	depositRoute.DepositUserRoutes(u, db, blob)

	t := api.Group("/t", jwt, middleware.OnlyRoles(helperAuth.RoleTeacher, helperAuth.RoleAdmin))
	activityRoute.ActivityTeacherRoutes(t, db, blob)
	depositRoute.DepositTeacherRoutes(t, db, blob)
}
