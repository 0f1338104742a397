// file: internals/features/gym/attendance/controller/qr_checkin_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymku_backend/internals/configs"
	"gymku_backend/internals/features/gym/attendance/dto"
	"gymku_backend/internals/features/gym/attendance/service"
	qrService "gymku_backend/internals/features/gym/qrtokens/service"
	helper "gymku_backend/internals/helpers"
)

// QRCheckinController: self-service check-in peserta. User hanya bisa
// menandai dirinya sendiri (user_id diambil dari token, bukan payload).
type QRCheckinController struct {
	Service *service.Service
	QR      *qrService.Service
}

func NewQRCheckinController(db *gorm.DB) *QRCheckinController {
	return &QRCheckinController{
		Service: service.New(db),
		QR:      qrService.New(configs.QRTokenSecret),
	}
}

// POST /class-attendance/qr-checkin
func (ctrl *QRCheckinController) SelfCheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.QRCheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// 1) Verifikasi token QR (signature + exp + tipe)
	verdict := ctrl.QR.Verify(req.QRToken)
	if !verdict.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "QR token ditolak: "+verdict.Reason)
	}

	// 2) Kelas pada token harus sama dengan kelas yang diminta
	if verdict.ClassID != req.ClassID {
		return helper.JsonError(c, fiber.StatusBadRequest, "QR token bukan untuk kelas ini")
	}

	// 3) Sisa gate (kelas ada, enrollment lunas, sesi berjalan, belum
	// check-in) di service
	row, err := ctrl.Service.SelfCheckIn(userID, req.ClassID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) && row != nil {
			return helper.JsonErrorWithData(c, fiber.StatusConflict, err.Error(), dto.FromAttendanceModel(*row))
		}
		return jsonFromServiceError(c, err)
	}

	return helper.JsonOK(c, "Check-in berhasil", dto.FromAttendanceModel(*row))
}
