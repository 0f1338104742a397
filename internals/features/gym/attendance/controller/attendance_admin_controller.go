// file: internals/features/gym/attendance/controller/attendance_admin_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/attendance/dto"
	"gymku_backend/internals/features/gym/attendance/service"
	helper "gymku_backend/internals/helpers"
	"gymku_backend/internals/helpers/dbtime"
)

// AttendanceAdminController: operasi maintenance bergate owner.
// Unlock melemahkan garansi finalitas absensi dan reset adalah alat
// migrasi data — keduanya sengaja tidak ada di route trainer.
type AttendanceAdminController struct {
	Service *service.Service
}

func NewAttendanceAdminController(db *gorm.DB) *AttendanceAdminController {
	return &AttendanceAdminController{Service: service.New(db)}
}

/* ===================== UNLOCK ===================== */
// POST /class-attendance/unlock
func (ctrl *AttendanceAdminController) UnlockSession(c *fiber.Ctx) error {
	var req dto.LockSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sessionDate, err := dbtime.ParseDate(req.SessionDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format session_date tidak valid (YYYY-MM-DD)")
	}

	unlocked, err := ctrl.Service.UnlockSession(req.ClassID, sessionDate)
	if err != nil {
		return jsonFromServiceError(c, err)
	}

	return helper.JsonOK(c, "Absensi sesi berhasil dibuka kuncinya", fiber.Map{"unlocked": unlocked})
}

/* ===================== RESET ===================== */
// DELETE /class-attendance/:class_id/reset
func (ctrl *AttendanceAdminController) ResetClassAttendance(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	deleted, err := ctrl.Service.ResetClassAttendance(classID, actorID)
	if err != nil {
		return jsonFromServiceError(c, err)
	}

	return helper.JsonDeleted(c, "Seluruh absensi kelas berhasil direset", fiber.Map{"deleted": deleted})
}
