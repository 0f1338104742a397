// file: internals/features/gym/notifications/controller/notification_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/notifications/service"
	helper "gymku_backend/internals/helpers"
)

type NotificationController struct {
	Service *service.Service
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{Service: service.New(db)}
}

// GET /notifications — feed notifikasi milik user yang login
func (ctrl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctrl.Service.ListByUser(userID, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar notifikasi", rows, &pagination)
}
