// file: internals/features/course/deposits/controller/deposit_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	aModel "kampusku_backend/internals/features/course/activities/model"
	dto "kampusku_backend/internals/features/course/deposits/dto"
	service "kampusku_backend/internals/features/course/deposits/service"
	mService "kampusku_backend/internals/features/course/members/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

type DepositController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Blob      helperOSS.BlobService
	Deposits  *service.DepositService
	Archives  *service.ArchiveService
	Roster    *mService.RosterService
}

func NewDepositController(db *gorm.DB, blob helperOSS.BlobService) *DepositController {
	return &DepositController{
		DB:        db,
		Validator: validator.New(),
		Blob:      blob,
		Deposits:  service.NewDepositService(service.NewGormDepositStore(db), blob),
		Archives:  service.NewArchiveService(blob),
		Roster:    mService.NewRosterService(db),
	}
}

// loadDepositoryActivity: ambil activity & pastikan variant-nya depository.
func (ctrl *DepositController) loadDepositoryActivity(c *fiber.Ctx, param string) (*aModel.ActivityModel, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "activity_id tidak valid")
	}
	var act aModel.ActivityModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&act, "activity_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Activity tidak ditemukan")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if act.ActivityKind != aModel.ActivityKindDepository {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Activity ini tidak menerima setoran file")
	}
	return &act, nil
}

// mapDepositErr: terjemahkan error service ke envelope HTTP.
func mapDepositErr(c *fiber.Ctx, err error) error {
	var pv *service.PolicyViolationError
	switch {
	case errors.Is(err, service.ErrDepositConflict):
		return helper.JsonError(c, fiber.StatusConflict, "Setoran untuk activity ini sudah ada, gunakan update")
	case errors.Is(err, service.ErrDepositNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Setoran tidak ditemukan")
	case errors.As(err, &pv):
		return helper.JsonError(c, fiber.StatusBadRequest, pv.Msg)
	case errors.Is(err, helperOSS.ErrStorageUnavailable):
		return helper.JsonError(c, fiber.StatusBadGateway, "Layanan penyimpanan sedang bermasalah, coba beberapa saat lagi")
	}
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* =========================
   Handlers (STUDENT)
========================= */

// POST /activities/:id/deposit - setoran pertama (multipart field "files")
func (ctrl *DepositController) Submit(c *fiber.Ctx) error {
	act, err := ctrl.loadDepositoryActivity(c, "id")
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if !helperOSS.IsMultipart(c) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gunakan multipart/form-data dengan field files")
	}

	dep, err := ctrl.Deposits.Submit(c.UserContext(), act, studentID, helperOSS.FormFiles(c, "files"))
	if err != nil {
		return mapDepositErr(c, err)
	}
	return helper.JsonCreated(c, "Setoran berhasil dikirim", dto.FromDepositModel(dep, ctrl.Blob.RetrievalURL))
}

// PUT /activities/:id/deposit - ganti seluruh file setoran
func (ctrl *DepositController) Replace(c *fiber.Ctx) error {
	act, err := ctrl.loadDepositoryActivity(c, "id")
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if !helperOSS.IsMultipart(c) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gunakan multipart/form-data dengan field files")
	}

	dep, err := ctrl.Deposits.Replace(c.UserContext(), act, studentID, helperOSS.FormFiles(c, "files"))
	if err != nil {
		return mapDepositErr(c, err)
	}
	return helper.JsonUpdated(c, "Setoran berhasil diperbarui", dto.FromDepositModel(dep, ctrl.Blob.RetrievalURL))
}

// DELETE /activities/:id/deposit - tarik kembali setoran
func (ctrl *DepositController) Withdraw(c *fiber.Ctx) error {
	act, err := ctrl.loadDepositoryActivity(c, "id")
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	if err := ctrl.Deposits.Withdraw(c.UserContext(), act.ActivityID, studentID); err != nil {
		return mapDepositErr(c, err)
	}
	return helper.JsonDeleted(c, "Setoran berhasil ditarik", fiber.Map{"deposit_activity_id": act.ActivityID})
}

// GET /activities/:id/deposit - setoran milik student yang login
func (ctrl *DepositController) GetMine(c *fiber.Ctx) error {
	act, err := ctrl.loadDepositoryActivity(c, "id")
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	dep, err := ctrl.Deposits.Store.GetByPair(c.UserContext(), act.ActivityID, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if dep == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Setoran tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", dto.FromDepositModel(dep, ctrl.Blob.RetrievalURL))
}
