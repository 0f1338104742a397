package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceCtrl "gymku_backend/internals/features/gym/attendance/controller"
)

// Route trainer/admin: siklus hidup absensi sesi kelas.
func AttendanceTrainerRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceCtrl.NewAttendanceController(db)

	// =====================
	// Attendance lifecycle
	// =====================
	g := r.Group("/class-attendance")
	g.Post("/open", ctrl.OpenSession)              // buka sesi (materialize)
	g.Post("/mark", ctrl.MarkAttendance)           // tandai kehadiran (tolak kalau locked)
	g.Patch("/:id/status", ctrl.OverrideStatus)    // koreksi manual, tembus lock
	g.Post("/lock", ctrl.LockSession)              // finalisasi per tanggal

	// =====================
	// Reports
	// =====================
	g.Get("/:class_id/sessions", ctrl.SessionSummaries) // ringkasan per sesi
	g.Get("/:class_id/sessions/:n", ctrl.SessionRows)   // baris satu sesi
	g.Get("/:class_id/report", ctrl.ClassReport)        // laporan lengkap + drill-down
	g.Get("/:class_id/rows", ctrl.ClassRows)            // dump mentah (placeholder tampak)
}
