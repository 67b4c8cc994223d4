// file: internals/features/course/deposits/controller/deposit_teacher_controller_test.go
package controller

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	dModel "kampusku_backend/internals/features/course/deposits/model"
	service "kampusku_backend/internals/features/course/deposits/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

/* =========================
   Stub infra
========================= */

type fakeBlob struct{}

func (fakeBlob) UploadToDir(context.Context, string, *multipart.FileHeader, helperOSS.FilePolicy) (string, error) {
	return "", errors.New("tidak dipakai di test ini")
}
func (fakeBlob) Delete(context.Context, string) error { return nil }
func (fakeBlob) DeleteMany(context.Context, []string) ([]string, map[string]error) {
	return nil, nil
}
func (fakeBlob) Stream(context.Context, string) (io.ReadCloser, error) {
	return nil, helperOSS.ErrStorageUnavailable
}
func (fakeBlob) RetrievalURL(key string) string { return "https://cdn.test/" + key }

type fakeStore struct {
	byID        map[uuid.UUID]*dModel.DepositModel
	getErr      error
	updatedEval map[uuid.UUID]map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:        map[uuid.UUID]*dModel.DepositModel{},
		updatedEval: map[uuid.UUID]map[string]any{},
	}
}

func (s *fakeStore) Insert(_ context.Context, dep *dModel.DepositModel) error {
	s.byID[dep.DepositID] = dep
	return nil
}

func (s *fakeStore) UpdateFileKeys(_ context.Context, _ uuid.UUID, _ []string) error { return nil }

func (s *fakeStore) UpdateEval(_ context.Context, depositID uuid.UUID, updates map[string]any) error {
	s.updatedEval[depositID] = updates
	return nil
}

func (s *fakeStore) Delete(_ context.Context, dep *dModel.DepositModel) error {
	delete(s.byID, dep.DepositID)
	return nil
}

func (s *fakeStore) GetByPair(_ context.Context, _, _ uuid.UUID) (*dModel.DepositModel, error) {
	return nil, s.getErr
}

func (s *fakeStore) GetByID(_ context.Context, depositID uuid.UUID) (*dModel.DepositModel, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.byID[depositID], nil
}

/* =========================
   Harness
========================= */

func newGradeApp(store *fakeStore, locals map[string]any) *fiber.App {
	blob := fakeBlob{}
	ctrl := &DepositController{
		Validator: validator.New(),
		Blob:      blob,
		Deposits:  service.NewDepositService(store, blob),
		Archives:  service.NewArchiveService(blob),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return helper.JsonError(c, code, err.Error())
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		return c.Next()
	})
	app.Patch("/deposits/:id/grade", ctrl.Grade)
	return app
}

func teacherLocals(teacherID uuid.UUID, unitIDs ...uuid.UUID) map[string]any {
	units := make([]any, 0, len(unitIDs))
	for _, id := range unitIDs {
		units = append(units, id.String())
	}
	return map[string]any{
		helperAuth.LocUserID:    uuid.New().String(),
		helperAuth.LocTeacherID: teacherID.String(),
		helperAuth.LocRole:      helperAuth.RoleTeacher,
		helperAuth.LocUnitIDs:   units,
	}
}

func gradeReq(depositID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(fiber.MethodPatch,
		"/deposits/"+depositID.String()+"/grade", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func seedGradable(store *fakeStore, unitID uuid.UUID) *dModel.DepositModel {
	dep := &dModel.DepositModel{
		DepositID:           uuid.New(),
		DepositActivityID:   uuid.New(),
		DepositStudentID:    uuid.New(),
		DepositCourseUnitID: unitID,
		DepositFileKeys:     []string{"uploads/deposits/a.pdf"},
	}
	store.byID[dep.DepositID] = dep
	return dep
}

/* =========================
   Grade
========================= */

func TestGradeHandler_TeacherOfUnitCanGrade(t *testing.T) {
	store := newFakeStore()
	unitID := uuid.New()
	dep := seedGradable(store, unitID)
	app := newGradeApp(store, teacherLocals(uuid.New(), unitID))

	resp, err := app.Test(gradeReq(dep.DepositID, `{"deposit_eval_score":15,"deposit_eval_comment":"Rapi"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, store.updatedEval, dep.DepositID)
	require.Equal(t, 15.0, store.updatedEval[dep.DepositID]["deposit_eval_score"])
}

func TestGradeHandler_ForeignUnitIsForbidden(t *testing.T) {
	store := newFakeStore()
	dep := seedGradable(store, uuid.New())
	// guru mengajar unit lain
	app := newGradeApp(store, teacherLocals(uuid.New(), uuid.New()))

	resp, err := app.Test(gradeReq(dep.DepositID, `{"deposit_eval_score":15}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Empty(t, store.updatedEval)
}

func TestGradeHandler_StoreReadErrorIsServerError(t *testing.T) {
	store := newFakeStore()
	unitID := uuid.New()
	dep := seedGradable(store, unitID)
	store.getErr = errors.New("connection reset")
	app := newGradeApp(store, teacherLocals(uuid.New(), unitID))

	resp, err := app.Test(gradeReq(dep.DepositID, `{"deposit_eval_score":15}`))
	require.NoError(t, err)
	// outage store tidak boleh melewati cek wewenang lalu tetap menulis
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Empty(t, store.updatedEval)
}

func TestGradeHandler_UnknownDepositIsNotFound(t *testing.T) {
	store := newFakeStore()
	app := newGradeApp(store, teacherLocals(uuid.New(), uuid.New()))

	resp, err := app.Test(gradeReq(uuid.New(), `{"deposit_eval_score":15}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGradeHandler_ScoreAboveBoundIsValidationError(t *testing.T) {
	store := newFakeStore()
	unitID := uuid.New()
	dep := seedGradable(store, unitID)
	app := newGradeApp(store, teacherLocals(uuid.New(), unitID))

	resp, err := app.Test(gradeReq(dep.DepositID, `{"deposit_eval_score":25}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "VALIDATION_ERROR")
	require.Contains(t, string(raw), "depositevalscore")
	require.Empty(t, store.updatedEval)
}
