package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceCtrl "gymku_backend/internals/features/gym/attendance/controller"
	"gymku_backend/internals/middlewares"
)

// Route member: self-service QR check-in (rate-limited lebih ketat).
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	qr := attendanceCtrl.NewQRCheckinController(db)

	g := r.Group("/class-attendance")
	g.Post("/qr-checkin", middlewares.QRCheckinRateLimiter(), qr.SelfCheckIn)
}
