// file: internals/features/course/activities/controller/activity_extra_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kampusku_backend/internals/features/course/activities/dto"
	model "kampusku_backend/internals/features/course/activities/model"
	service "kampusku_backend/internals/features/course/activities/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

/* =========================
   Category & completion
========================= */

// PUT /:id/category - classify/reclassify (TEACHER)
// body {category_name} ; null/kosong = lepas dari category saja
func (ctrl *ActivityController) Classify(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var act model.ActivityModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&act, "activity_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activity tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := helperAuth.EnsureTeachesUnit(c, act.ActivityCourseUnitID); err != nil {
		return err
	}

	var body dto.ClassifyActivityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	newName := ""
	if body.CategoryName != nil {
		newName = strings.TrimSpace(*body.CategoryName)
	}
	if err := ctrl.Categories.Reclassify(c.UserContext(), act.ActivityCourseUnitID, act.ActivityID, newName); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Kategori activity diperbarui", fiber.Map{
		"activity_id":   act.ActivityID,
		"category_name": body.CategoryName,
	})
}

// POST /:id/complete - tandai selesai (STUDENT)
func (ctrl *ActivityController) MarkComplete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	sid, err := helperAuth.GetStudentID(c)
	if err != nil {
		return err
	}

	var act model.ActivityModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Select("activity_id").
		First(&act, "activity_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activity tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	mark, err := ctrl.Completions.MarkComplete(c.UserContext(), id, sid)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCompleted) {
			return helper.JsonError(c, fiber.StatusConflict, "Activity sudah ditandai selesai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Activity ditandai selesai", mark)
}

// GET /:id/completion - persentase selesai (TEACHER)
func (ctrl *ActivityController) CompletionRate(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var act model.ActivityModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&act, "activity_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Activity tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := helperAuth.EnsureTeachesUnit(c, act.ActivityCourseUnitID); err != nil {
		return err
	}

	rate, err := ctrl.Completions.CompletionRate(c.UserContext(), &act)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.CompletionRateResponse{
		ActivityID:     act.ActivityID,
		CompletionRate: rate,
	})
}
