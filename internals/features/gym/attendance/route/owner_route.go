package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceCtrl "gymku_backend/internals/features/gym/attendance/controller"
)

// Route owner: maintenance yang melemahkan garansi integritas
// (unlock) dan alat migrasi data (reset).
func AttendanceOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceCtrl.NewAttendanceAdminController(db)

	g := r.Group("/class-attendance")
	g.Post("/unlock", ctrl.UnlockSession)
	g.Delete("/:class_id/reset", ctrl.ResetClassAttendance)
}
