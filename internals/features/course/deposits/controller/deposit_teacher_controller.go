// file: internals/features/course/deposits/controller/deposit_teacher_controller.go
package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	aModel "kampusku_backend/internals/features/course/activities/model"
	dto "kampusku_backend/internals/features/course/deposits/dto"
	dModel "kampusku_backend/internals/features/course/deposits/model"
	service "kampusku_backend/internals/features/course/deposits/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

/* =========================
   Handlers (TEACHER)
========================= */

// GET /activities/:id/deposits - daftar setoran satu activity (+filter graded)
func (ctrl *DepositController) ListByActivity(c *fiber.Ctx) error {
	act, err := ctrl.loadDepositoryActivity(c, "id")
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureTeachesUnit(c, act.ActivityCourseUnitID); err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&dModel.DepositModel{}).
		Where("deposit_activity_id = ?", act.ActivityID)
	switch c.Query("graded") {
	case "true":
		q = q.Where("deposit_eval_graded_at IS NOT NULL")
	case "false":
		q = q.Where("deposit_eval_graded_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []dModel.DepositModel
	if err := q.Order("deposit_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK",
		dto.FromDepositModels(rows, ctrl.Blob.RetrievalURL),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// PATCH /deposits/:id/grade - evaluasi merge-only (score 0..20, komentar)
func (ctrl *DepositController) Grade(c *fiber.Ctx) error {
	depositID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "deposit_id tidak valid")
	}
	teacherID, err := helperAuth.GetTeacherID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var body dto.GradeDepositRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	existing, err := ctrl.Deposits.Store.GetByID(c.UserContext(), depositID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if existing == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Setoran tidak ditemukan")
	}
	if err := helperAuth.EnsureTeachesUnit(c, existing.DepositCourseUnitID); err != nil {
		return err
	}

	dep, err := ctrl.Deposits.Grade(c.UserContext(), depositID, teacherID, body.DepositEvalScore, body.DepositEvalComment)
	if err != nil {
		return mapDepositErr(c, err)
	}
	return helper.JsonUpdated(c, "Evaluasi tersimpan", dto.FromDepositModel(dep, ctrl.Blob.RetrievalURL))
}

/* =========================
   Archive export (streaming)
========================= */

// GET /deposits/:id/archive - zip satu setoran
func (ctrl *DepositController) ExportOne(c *fiber.Ctx) error {
	depositID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "deposit_id tidak valid")
	}
	dep, err := ctrl.Deposits.Store.GetByID(c.UserContext(), depositID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if dep == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Setoran tidak ditemukan")
	}
	if err := helperAuth.EnsureTeachesUnit(c, dep.DepositCourseUnitID); err != nil {
		return err
	}

	var act aModel.ActivityModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&act, "activity_id = ?", dep.DepositActivityID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	firstName, lastName, err := ctrl.Roster.StudentName(c.UserContext(), dep.DepositStudentID)
	if err != nil {
		// nama tidak ketemu bukan alasan gagal export
		firstName, lastName = dep.DepositStudentID.String(), "student"
	}

	if uid, err := helperAuth.GetUserID(c); err == nil {
		log.Printf("[ARCHIVE] export deposit=%s oleh user=%s", dep.DepositID, uid)
	}

	filename := service.SingleArchiveFilename(lastName, firstName, act.ActivityTitle)
	ctrl.streamArchive(c, filename, func(ctx context.Context, w *bufio.Writer) error {
		return ctrl.Archives.WriteDepositArchive(ctx, w, dep)
	})
	return nil
}

// GET /activities/:id/archive - zip semua setoran, folder per participant
func (ctrl *DepositController) ExportBulk(c *fiber.Ctx) error {
	act, err := ctrl.loadDepositoryActivity(c, "id")
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureTeachesUnit(c, act.ActivityCourseUnitID); err != nil {
		return err
	}

	var rows []dModel.DepositModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("deposit_activity_id = ?", act.ActivityID).
		Order("deposit_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(rows) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Belum ada setoran untuk activity ini")
	}

	// nama folder dihitung SEBELUM streaming dimulai (query DB selesai di sini)
	entries := make([]service.BulkEntry, 0, len(rows))
	for i := range rows {
		firstName, lastName, err := ctrl.Roster.StudentName(c.UserContext(), rows[i].DepositStudentID)
		if err != nil {
			firstName, lastName = rows[i].DepositStudentID.String(), "student"
		}
		entries = append(entries, service.BulkEntry{
			FolderName: service.FolderName(lastName, firstName),
			Deposit:    &rows[i],
		})
	}

	if uid, err := helperAuth.GetUserID(c); err == nil {
		log.Printf("[ARCHIVE] export activity=%s setoran=%d oleh user=%s", act.ActivityID, len(entries), uid)
	}

	filename := service.BulkArchiveFilename(act.ActivityTitle)
	ctrl.streamArchive(c, filename, func(ctx context.Context, w *bufio.Writer) error {
		return ctrl.Archives.WriteBulkArchive(ctx, w, entries)
	})
	return nil
}

// streamArchive: tulis zip langsung ke body stream - tanpa buffer arsip utuh.
// Di dalam stream writer request context sudah tidak hidup, jadi fetch blob
// memakai context.Background.
func (ctrl *DepositController) streamArchive(c *fiber.Ctx, filename string, write func(ctx context.Context, w *bufio.Writer) error) {
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		if err := write(context.Background(), w); err != nil && !errors.Is(err, context.Canceled) {
			// header sudah terkirim - yang bisa dilakukan hanya mencatat
			log.Printf("[ARCHIVE] stream terputus file=%s err=%v", filename, err)
		}
		_ = w.Flush()
	})
}
