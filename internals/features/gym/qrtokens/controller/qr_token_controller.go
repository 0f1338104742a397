// file: internals/features/gym/qrtokens/controller/qr_token_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymku_backend/internals/configs"
	attendanceDto "gymku_backend/internals/features/gym/attendance/dto"
	classService "gymku_backend/internals/features/gym/classes/service"
	"gymku_backend/internals/features/gym/qrtokens/service"
	helper "gymku_backend/internals/helpers"
)

type QRTokenController struct {
	QR      *service.Service
	Classes *classService.Service
}

func NewQRTokenController(db *gorm.DB) *QRTokenController {
	return &QRTokenController{
		QR:      service.New(configs.QRTokenSecret),
		Classes: classService.New(db),
	}
}

/* ===================== ISSUE ===================== */
// POST /class-qr/issue — trainer kelas (atau admin) menerbitkan token QR
// berumur pendek untuk ditampilkan di layar studio.
func (ctrl *QRTokenController) Issue(c *fiber.Ctx) error {
	var req attendanceDto.IssueQRTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// kelas harus ada
	cls, err := ctrl.Classes.GetClass(req.ClassID, nil)
	if err != nil {
		if errors.Is(err, classService.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}

	// gate trainer-of-class (admin/owner bebas)
	if !helper.IsAdminOrAbove(c) {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		if cls.GymClassTrainerUserId != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Kamu bukan trainer kelas ini")
		}
	}

	token, expiresAt, err := ctrl.QR.Issue(req.ClassID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan QR token")
	}

	return helper.JsonCreated(c, "QR token berhasil diterbitkan", attendanceDto.IssueQRTokenResponse{
		QRToken:   token,
		ExpiresAt: expiresAt,
	})
}
