// file: internals/features/course/activities/controller/activity_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kampusku_backend/internals/features/course/activities/dto"
	model "kampusku_backend/internals/features/course/activities/model"
	service "kampusku_backend/internals/features/course/activities/service"
	mService "kampusku_backend/internals/features/course/members/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

type ActivityController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Blob        helperOSS.BlobService
	Categories  *service.CategoryService
	Completions *service.CompletionService
}

func NewActivityController(db *gorm.DB, blob helperOSS.BlobService) *ActivityController {
	return &ActivityController{
		DB:          db,
		Validator:   validator.New(),
		Blob:        blob,
		Categories:  service.NewCategoryService(db),
		Completions: service.NewCompletionService(db, mService.NewRosterService(db)),
	}
}

// mapStorageErr: kegagalan object store tidak pernah bocor detail internal
func mapStorageErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, helperOSS.ErrStorageUnavailable) {
		return helper.JsonError(c, fiber.StatusBadGateway, "Layanan penyimpanan sedang bermasalah, coba beberapa saat lagi")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* =========================
   Handlers (TEACHER)
========================= */

// POST / - buat activity (variant ditentukan activity_kind, immutable)
func (ctrl *ActivityController) Create(c *fiber.Ctx) error {
	var body dto.CreateActivityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}
	if err := helperAuth.EnsureTeachesUnit(c, body.ActivityCourseUnitID); err != nil {
		return err
	}

	act := body.ToModel()

	// Upload blob milik activity SEBELUM insert (single_file / instruksi file).
	// Kalau insert gagal, blob yang sudah naik dihapus lagi (kompensasi).
	var uploadedKey string
	switch act.ActivityKind {
	case model.ActivityKindSingleFile:
		fh, err := c.FormFile("file")
		if err != nil || fh == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Activity single_file membutuhkan file")
		}
		key, err := ctrl.Blob.UploadToDir(c.UserContext(), "activities", fh, helperOSS.ActivityFilePolicy)
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			return mapStorageErr(c, err)
		}
		uploadedKey = key
		act.ActivityFileKey = &key

	case model.ActivityKindDepository:
		if fh, err := c.FormFile("instructions_file"); err == nil && fh != nil {
			key, err := ctrl.Blob.UploadToDir(c.UserContext(), "activities/instructions", fh, helperOSS.ActivityFilePolicy)
			if err != nil {
				if fe, ok := err.(*fiber.Error); ok {
					return helper.JsonError(c, fe.Code, fe.Message)
				}
				return mapStorageErr(c, err)
			}
			uploadedKey = key
			act.ActivityInstructionsFileKey = &key
		}
	}

	if err := act.ValidateVariant(); err != nil {
		ctrl.compensateBlob(c, uploadedKey)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(act).Error; err != nil {
		ctrl.compensateBlob(c, uploadedKey)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if body.CategoryName != nil && strings.TrimSpace(*body.CategoryName) != "" {
		if err := ctrl.Categories.Classify(c.UserContext(), act.ActivityCourseUnitID, act.ActivityID, *body.CategoryName); err != nil {
			// activity sudah tersimpan; klasifikasi gagal cukup dicatat
			log.Printf("[ACTIVITY] classify gagal act=%s err=%v", act.ActivityID, err)
		}
	}

	return helper.JsonCreated(c, "Activity berhasil dibuat", dto.FromActivityModel(act, ctrl.Blob.RetrievalURL))
}

// PATCH /:id - hanya field variant existing; ganti kind ditolak
func (ctrl *ActivityController) Patch(c *fiber.Ctx) error {
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

	var body dto.PatchActivityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	freedKey, err := body.Apply(&act)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := act.ValidateVariant(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&act).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Blob instruksi lama baru dibebaskan SETELAH record menunjuk teks;
	// kegagalan hapus hanya dicatat, mengikuti pola Delete di bawah.
	if freedKey != "" {
		if err := ctrl.Blob.Delete(c.UserContext(), freedKey); err != nil {
			log.Printf("[ACTIVITY] orphan blob key=%s act=%s err=%v", freedKey, act.ActivityID, err)
		}
	}

	return helper.JsonUpdated(c, "Activity diperbarui", dto.FromActivityModel(&act, ctrl.Blob.RetrievalURL))
}

// DELETE /:id - hapus record + blob milik activity (best-effort) + lepas dari category.
// Deposit TIDAK di-cascade: depository yang sudah punya setoran jarang dihapus,
// rekonsiliasi diserahkan ke caller.
func (ctrl *ActivityController) Delete(c *fiber.Ctx) error {
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

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&act).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Kompensasi best-effort setelah record hilang
	if key, ok := act.OwnedBlobKey(); ok {
		if err := ctrl.Blob.Delete(c.UserContext(), key); err != nil {
			log.Printf("[ACTIVITY] orphan blob key=%s act=%s err=%v", key, act.ActivityID, err)
		}
	}
	if err := ctrl.Categories.Remove(c.UserContext(), act.ActivityCourseUnitID, act.ActivityID); err != nil {
		log.Printf("[ACTIVITY] lepas category gagal act=%s err=%v", act.ActivityID, err)
	}

	return helper.JsonDeleted(c, "Activity dihapus", fiber.Map{
		"activity_id": id,
	})
}

func (ctrl *ActivityController) compensateBlob(c *fiber.Ctx, key string) {
	if key == "" {
		return
	}
	if err := ctrl.Blob.Delete(c.UserContext(), key); err != nil {
		log.Printf("[ACTIVITY] rollback blob gagal key=%s err=%v", key, err)
	}
}
