// file: internals/features/course/activities/controller/activity_get_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kampusku_backend/internals/features/course/activities/dto"
	model "kampusku_backend/internals/features/course/activities/model"
	helper "kampusku_backend/internals/helpers"
)

/* =========================
   Read paths
========================= */

// GET /:id
func (ctrl *ActivityController) GetByID(c *fiber.Ctx) error {
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

	resp := dto.FromActivityModel(&act, ctrl.Blob.RetrievalURL)
	resp.CategoryName = ctrl.categoryNameOf(c, &act)
	return helper.JsonOK(c, "OK", resp)
}

// GET /units/:unit_id/activities?kind=&pinned=&page=&per_page=
func (ctrl *ActivityController) ListByUnit(c *fiber.Ctx) error {
	unitID, err := uuid.Parse(strings.TrimSpace(c.Params("unit_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "unit_id tidak valid")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ActivityModel{}).
		Where("activity_course_unit_id = ?", unitID)

	if kind := strings.TrimSpace(c.Query("kind")); kind != "" {
		q = q.Where("activity_kind = ?", kind)
	}
	if pinned := strings.TrimSpace(c.Query("pinned")); pinned != "" {
		q = q.Where("activity_pinned = ?", pinned == "true" || pinned == "1")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ActivityModel
	if err := q.
		Order("activity_pinned DESC, activity_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.ActivityResponse, 0, len(rows))
	for i := range rows {
		resp := dto.FromActivityModel(&rows[i], ctrl.Blob.RetrievalURL)
		resp.CategoryName = ctrl.categoryNameOf(c, &rows[i])
		out = append(out, resp)
	}

	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// categoryNameOf: category yang memegang activity (maks satu per unit)
func (ctrl *ActivityController) categoryNameOf(c *fiber.Ctx, act *model.ActivityModel) *string {
	var cat model.ActivityCategoryModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("activity_category_course_unit_id = ? AND ? = ANY (activity_category_activity_ids)",
			act.ActivityCourseUnitID, act.ActivityID.String()).
		First(&cat).Error
	if err != nil {
		return nil
	}
	return &cat.ActivityCategoryName
}
