// file: internals/features/gym/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/attendance/dto"
	"gymku_backend/internals/features/gym/attendance/service"
	helper "gymku_backend/internals/helpers"
	"gymku_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	Service *service.Service
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{Service: service.New(db)}
}

// Map sentinel error service → status HTTP + pesan spesifiknya.
func jsonFromServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrNoSessionOpened),
		errors.Is(err, service.ErrNotInSession),
		errors.Is(err, service.ErrNothingToLock),
		errors.Is(err, service.ErrAttendanceNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionNumberOutOfRange):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrClassCompleted),
		errors.Is(err, service.ErrNoPaidEnrollees):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrSessionAlreadyOpened),
		errors.Is(err, service.ErrAlreadyCheckedIn):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAttendanceLocked),
		errors.Is(err, service.ErrNotEnrolled):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

// Gate "trainer kelas ini atau admin/owner" untuk semua route trainer.
func (ctrl *AttendanceController) ensureCanManageClass(c *fiber.Ctx, classID uuid.UUID) error {
	if helper.IsAdminOrAbove(c) {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ok, err := ctrl.Service.Classes.IsTrainerOfClass(classID, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "Kamu bukan trainer kelas ini")
	}
	return nil
}

/* ===================== OPEN SESSION ===================== */
// POST /class-attendance/open
func (ctrl *AttendanceController) OpenSession(c *fiber.Ctx) error {
	var req dto.OpenSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.ensureCanManageClass(c, req.ClassID); err != nil {
		return err
	}

	sessionDate, err := dbtime.ParseDate(req.SessionDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format session_date tidak valid (YYYY-MM-DD)")
	}

	// allow_empty hanya untuk admin/owner: placeholder adalah alat
	// bookkeeping, bukan fitur trainer sehari-hari
	allowEmpty := req.AllowEmpty && helper.IsAdminOrAbove(c)

	result, err := ctrl.Service.OpenSession(req.ClassID, req.SessionNumber, sessionDate, allowEmpty)
	if err != nil {
		return jsonFromServiceError(c, err)
	}

	return helper.JsonCreated(c, "Sesi berhasil dibuka", dto.OpenSessionResponse{
		Created:       result.Created,
		IsLastSession: result.IsLastSession,
		Placeholder:   result.Placeholder,
	})
}

/* ===================== MARK ===================== */
// POST /class-attendance/mark
func (ctrl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.ensureCanManageClass(c, req.ClassID); err != nil {
		return err
	}

	// normalisasi bool longgar di boundary; service cuma terima bool murni
	isPresent, err := helper.ParseBoolLoose(req.IsPresent)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "is_present harus boolean")
	}

	var sessionDate *time.Time
	if req.SessionDate != nil {
		parsed, err := dbtime.ParseDate(*req.SessionDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format session_date tidak valid (YYYY-MM-DD)")
		}
		sessionDate = &parsed
	}

	row, err := ctrl.Service.MarkAttendance(req.ClassID, req.UserID, req.SessionNumber, isPresent, sessionDate, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrAttendanceLocked) && row != nil {
			// kembalikan kondisi terakhir supaya klien bisa menampilkan
			return helper.JsonErrorWithData(c, fiber.StatusForbidden, err.Error(), dto.FromAttendanceModel(*row))
		}
		return jsonFromServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Absensi berhasil dicatat", dto.FromAttendanceModel(*row))
}

/* ===================== OVERRIDE (tembus lock) ===================== */
// PATCH /class-attendance/:id/status
func (ctrl *AttendanceController) OverrideStatus(c *fiber.Ctx) error {
	attendanceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.OverrideStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	isPresent, err := helper.ParseBoolLoose(req.IsPresent)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "is_present harus boolean")
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	// otorisasi per kelas: ambil baris dulu untuk tahu kelasnya,
	// sebelum ada mutasi apa pun
	existing, err := ctrl.Service.GetAttendance(attendanceID)
	if err != nil {
		return jsonFromServiceError(c, err)
	}
	if err := ctrl.ensureCanManageClass(c, existing.ClassSessionAttendanceClassId); err != nil {
		return err
	}

	updated, err := ctrl.Service.OverrideStatus(attendanceID, isPresent, actorID)
	if err != nil {
		return jsonFromServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Status absensi berhasil dikoreksi", dto.FromAttendanceModel(*updated))
}

/* ===================== LOCK ===================== */
// POST /class-attendance/lock
func (ctrl *AttendanceController) LockSession(c *fiber.Ctx) error {
	var req dto.LockSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.ensureCanManageClass(c, req.ClassID); err != nil {
		return err
	}

	sessionDate, err := dbtime.ParseDate(req.SessionDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format session_date tidak valid (YYYY-MM-DD)")
	}

	locked, err := ctrl.Service.LockSession(req.ClassID, sessionDate)
	if err != nil {
		return jsonFromServiceError(c, err)
	}

	return helper.JsonOK(c, "Absensi sesi berhasil dikunci", dto.LockSessionResponse{Locked: locked})
}

/* ===================== REPORTS ===================== */

// GET /class-attendance/:class_id/sessions
func (ctrl *AttendanceController) SessionSummaries(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}
	if err := ctrl.ensureCanManageClass(c, classID); err != nil {
		return err
	}

	summaries, err := ctrl.Service.SessionSummaries(classID)
	if err != nil {
		return jsonFromServiceError(c, err)
	}
	return helper.JsonOK(c, "Ringkasan sesi", summaries)
}

// GET /class-attendance/:class_id/sessions/:n
func (ctrl *AttendanceController) SessionRows(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}
	sessionNumber, err := strconv.Atoi(c.Params("n"))
	if err != nil || sessionNumber < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "nomor sesi tidak valid")
	}
	if err := ctrl.ensureCanManageClass(c, classID); err != nil {
		return err
	}

	rows, err := ctrl.Service.ListSessionRows(classID, sessionNumber)
	if err != nil {
		return jsonFromServiceError(c, err)
	}
	return helper.JsonOK(c, "Daftar absensi sesi", dto.FromAttendanceModels(rows))
}

// GET /class-attendance/:class_id/report
func (ctrl *AttendanceController) ClassReport(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}
	if err := ctrl.ensureCanManageClass(c, classID); err != nil {
		return err
	}

	report, err := ctrl.Service.BuildClassReport(classID)
	if err != nil {
		return jsonFromServiceError(c, err)
	}
	return helper.JsonOK(c, "Laporan absensi kelas", report)
}

// GET /class-attendance/:class_id/rows
func (ctrl *AttendanceController) ClassRows(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}
	if err := ctrl.ensureCanManageClass(c, classID); err != nil {
		return err
	}

	rows, err := ctrl.Service.ListClassRows(classID)
	if err != nil {
		return jsonFromServiceError(c, err)
	}
	return helper.JsonOK(c, "Semua baris absensi kelas", dto.FromAttendanceModels(rows))
}
