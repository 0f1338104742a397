// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymku_backend/internals/constants"
	attendanceRoute "gymku_backend/internals/features/gym/attendance/route"
	notificationRoute "gymku_backend/internals/features/gym/notifications/route"
	qrTokenRoute "gymku_backend/internals/features/gym/qrtokens/route"
	authMw "gymku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== USER (member login) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMw.AuthMiddleware(),
	)
	attendanceRoute.AttendanceUserRoutes(user, db)
	notificationRoute.NotificationUserRoutes(user, db)

	// ===================== TRAINER (trainer/admin/owner) =====================
	log.Println("[INFO] Setting up TRAINER group...")
	trainer := app.Group("/api/t",
		authMw.AuthMiddleware(),
		authMw.OnlyRoles(constants.RoleErrorTrainer("absensi kelas"), constants.TrainerAndAbove...),
	)
	attendanceRoute.AttendanceTrainerRoutes(trainer, db)
	qrTokenRoute.QRTokenTrainerRoutes(trainer, db)

	// ===================== OWNER (maintenance) =====================
	log.Println("[INFO] Setting up OWNER group...")
	owner := app.Group("/api/o",
		authMw.AuthMiddleware(),
		authMw.OnlyRoles(constants.RoleErrorOwner("maintenance absensi"), constants.OwnerOnly...),
	)
	attendanceRoute.AttendanceOwnerRoutes(owner, db)
}
