// file: internals/features/course/activities/dto/activity_dto.go
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	model "kampusku_backend/internals/features/course/activities/model"
)

/* =========================
   Requests
========================= */

// CreateActivityRequest: field variant dikirim sesuai kind; file (single_file /
// instruksi depository) diambil dari multipart, bukan body ini.
type CreateActivityRequest struct {
	ActivityCourseUnitID uuid.UUID          `json:"activity_course_unit_id" form:"activity_course_unit_id" validate:"required"`
	ActivityKind         model.ActivityKind `json:"activity_kind" form:"activity_kind" validate:"required,oneof=announcement single_file depository"`
	ActivityTitle        string             `json:"activity_title" form:"activity_title" validate:"required,min=1,max=200"`
	ActivityBody         string             `json:"activity_body" form:"activity_body"`
	ActivityPinned       bool               `json:"activity_pinned" form:"activity_pinned"`

	ActivityRestrictedGroupIDs []string `json:"activity_restricted_group_ids" form:"activity_restricted_group_ids" validate:"omitempty,dive,uuid"`

	// announcement
	ActivityUrgency *model.UrgencyLevel `json:"activity_urgency" form:"activity_urgency" validate:"omitempty,oneof=normal important urgent"`

	// single_file
	ActivityFileKind *string `json:"activity_file_kind" form:"activity_file_kind" validate:"omitempty,max=24"`

	// depository
	ActivityInstructionsText  *string    `json:"activity_instructions_text" form:"activity_instructions_text"`
	ActivityAcceptedFileKinds []string   `json:"activity_accepted_file_kinds" form:"activity_accepted_file_kinds"`
	ActivityMaxFiles          *int       `json:"activity_max_files" form:"activity_max_files" validate:"omitempty,min=1,max=50"`
	ActivityDueAt             *time.Time `json:"activity_due_at" form:"activity_due_at"`

	// opsional: langsung klasifikasi ke category
	CategoryName *string `json:"category_name" form:"category_name" validate:"omitempty,max=80"`
}

func (r *CreateActivityRequest) ToModel() *model.ActivityModel {
	m := &model.ActivityModel{
		ActivityCourseUnitID:       r.ActivityCourseUnitID,
		ActivityKind:               r.ActivityKind,
		ActivityTitle:              strings.TrimSpace(r.ActivityTitle),
		ActivityBody:               r.ActivityBody,
		ActivityPinned:             r.ActivityPinned,
		ActivityRestrictedGroupIDs: r.ActivityRestrictedGroupIDs,
	}
	switch r.ActivityKind {
	case model.ActivityKindAnnouncement:
		m.ActivityUrgency = r.ActivityUrgency
	case model.ActivityKindSingleFile:
		m.ActivityFileKind = r.ActivityFileKind
	case model.ActivityKindDepository:
		m.ActivityInstructionsText = r.ActivityInstructionsText
		m.ActivityAcceptedFileKinds = r.ActivityAcceptedFileKinds
		m.ActivityMaxFiles = r.ActivityMaxFiles
		m.ActivityDueAt = r.ActivityDueAt
	}
	return m
}

// PatchActivityRequest: hanya field yang legal utk variant existing yang
// boleh diset; activity_kind tidak pernah bisa diganti.
type PatchActivityRequest struct {
	ActivityTitle  *string `json:"activity_title" form:"activity_title" validate:"omitempty,min=1,max=200"`
	ActivityBody   *string `json:"activity_body" form:"activity_body"`
	ActivityPinned *bool   `json:"activity_pinned" form:"activity_pinned"`

	ActivityRestrictedGroupIDs []string `json:"activity_restricted_group_ids" form:"activity_restricted_group_ids" validate:"omitempty,dive,uuid"`

	ActivityUrgency *model.UrgencyLevel `json:"activity_urgency" form:"activity_urgency" validate:"omitempty,oneof=normal important urgent"`

	ActivityFileKind *string `json:"activity_file_kind" form:"activity_file_kind" validate:"omitempty,max=24"`

	ActivityInstructionsText  *string    `json:"activity_instructions_text" form:"activity_instructions_text"`
	ActivityAcceptedFileKinds []string   `json:"activity_accepted_file_kinds" form:"activity_accepted_file_kinds"`
	ActivityMaxFiles          *int       `json:"activity_max_files" form:"activity_max_files" validate:"omitempty,min=1,max=50"`
	ActivityDueAt             *time.Time `json:"activity_due_at" form:"activity_due_at"`
}

// HasVariantFields: cek apakah request menyentuh field milik variant tertentu
func (r *PatchActivityRequest) HasAnnouncementFields() bool { return r.ActivityUrgency != nil }
func (r *PatchActivityRequest) HasSingleFileFields() bool   { return r.ActivityFileKind != nil }
func (r *PatchActivityRequest) HasDepositoryFields() bool {
	return r.ActivityInstructionsText != nil || len(r.ActivityAcceptedFileKinds) > 0 ||
		r.ActivityMaxFiles != nil || r.ActivityDueAt != nil
}

// Apply menyalin field terisi ke model existing setelah menolak field yang
// bukan milik variant-nya (activity_kind tidak pernah bisa diganti).
// Object key instruksi yang tergantikan teks inline dikembalikan supaya
// caller membebaskannya SETELAH record tersimpan; tanpa itu blob lama
// kehilangan pemilik tanpa pernah dihapus.
func (r *PatchActivityRequest) Apply(act *model.ActivityModel) (freedBlobKey string, err error) {
	switch act.ActivityKind {
	case model.ActivityKindAnnouncement:
		if r.HasSingleFileFields() || r.HasDepositoryFields() {
			return "", errors.New("Field tsb tidak berlaku untuk announcement")
		}
	case model.ActivityKindSingleFile:
		if r.HasAnnouncementFields() || r.HasDepositoryFields() {
			return "", errors.New("Field tsb tidak berlaku untuk single_file")
		}
	case model.ActivityKindDepository:
		if r.HasAnnouncementFields() || r.HasSingleFileFields() {
			return "", errors.New("Field tsb tidak berlaku untuk depository")
		}
	}

	if r.ActivityTitle != nil {
		act.ActivityTitle = strings.TrimSpace(*r.ActivityTitle)
	}
	if r.ActivityBody != nil {
		act.ActivityBody = *r.ActivityBody
	}
	if r.ActivityPinned != nil {
		act.ActivityPinned = *r.ActivityPinned
	}
	if r.ActivityRestrictedGroupIDs != nil {
		act.ActivityRestrictedGroupIDs = r.ActivityRestrictedGroupIDs
	}
	if r.ActivityUrgency != nil {
		act.ActivityUrgency = r.ActivityUrgency
	}
	if r.ActivityFileKind != nil {
		act.ActivityFileKind = r.ActivityFileKind
	}
	if r.ActivityInstructionsText != nil {
		act.ActivityInstructionsText = r.ActivityInstructionsText
		// ganti instruksi ke teks: blob lama tidak direferensikan lagi
		if act.ActivityInstructionsFileKey != nil && strings.TrimSpace(*act.ActivityInstructionsFileKey) != "" {
			freedBlobKey = *act.ActivityInstructionsFileKey
		}
		act.ActivityInstructionsFileKey = nil
	}
	if len(r.ActivityAcceptedFileKinds) > 0 {
		act.ActivityAcceptedFileKinds = r.ActivityAcceptedFileKinds
	}
	if r.ActivityMaxFiles != nil {
		act.ActivityMaxFiles = r.ActivityMaxFiles
	}
	if r.ActivityDueAt != nil {
		act.ActivityDueAt = r.ActivityDueAt
	}
	return freedBlobKey, nil
}

type ClassifyActivityRequest struct {
	CategoryName *string `json:"category_name" validate:"omitempty,min=1,max=80"`
}

/* =========================
   Responses
========================= */

// ActivityResponse: key blob tidak pernah keluar - diganti retrieval URL.
type ActivityResponse struct {
	ActivityID           uuid.UUID          `json:"activity_id"`
	ActivityCourseUnitID uuid.UUID          `json:"activity_course_unit_id"`
	ActivityKind         model.ActivityKind `json:"activity_kind"`
	ActivityTitle        string             `json:"activity_title"`
	ActivityBody         string             `json:"activity_body"`
	ActivityPinned       bool               `json:"activity_pinned"`

	ActivityRestrictedGroupIDs []string `json:"activity_restricted_group_ids,omitempty"`

	ActivityUrgency *model.UrgencyLevel `json:"activity_urgency,omitempty"`

	ActivityFileKind *string `json:"activity_file_kind,omitempty"`
	ActivityFileURL  *string `json:"activity_file_url,omitempty"`

	ActivityInstructionsText    *string    `json:"activity_instructions_text,omitempty"`
	ActivityInstructionsFileURL *string    `json:"activity_instructions_file_url,omitempty"`
	ActivityAcceptedFileKinds   []string   `json:"activity_accepted_file_kinds,omitempty"`
	ActivityMaxFiles            *int       `json:"activity_max_files,omitempty"`
	ActivityDueAt               *time.Time `json:"activity_due_at,omitempty"`

	CategoryName *string `json:"category_name,omitempty"`

	ActivityCreatedAt time.Time `json:"activity_created_at"`
	ActivityUpdatedAt time.Time `json:"activity_updated_at"`
}

// FromActivityModel: urlFn mengubah object key jadi retrieval reference
// (signed/public) saat read - URL tidak disimpan di DB karena bisa ber-TTL.
func FromActivityModel(m *model.ActivityModel, urlFn func(string) string) *ActivityResponse {
	resp := &ActivityResponse{
		ActivityID:                 m.ActivityID,
		ActivityCourseUnitID:       m.ActivityCourseUnitID,
		ActivityKind:               m.ActivityKind,
		ActivityTitle:              m.ActivityTitle,
		ActivityBody:               m.ActivityBody,
		ActivityPinned:             m.ActivityPinned,
		ActivityRestrictedGroupIDs: m.ActivityRestrictedGroupIDs,
		ActivityUrgency:            m.ActivityUrgency,
		ActivityFileKind:           m.ActivityFileKind,
		ActivityInstructionsText:   m.ActivityInstructionsText,
		ActivityAcceptedFileKinds:  m.ActivityAcceptedFileKinds,
		ActivityMaxFiles:           m.ActivityMaxFiles,
		ActivityDueAt:              m.ActivityDueAt,
		ActivityCreatedAt:          m.ActivityCreatedAt,
		ActivityUpdatedAt:          m.ActivityUpdatedAt,
	}
	if urlFn != nil {
		if m.ActivityFileKey != nil && *m.ActivityFileKey != "" {
			u := urlFn(*m.ActivityFileKey)
			resp.ActivityFileURL = &u
		}
		if m.ActivityInstructionsFileKey != nil && *m.ActivityInstructionsFileKey != "" {
			u := urlFn(*m.ActivityInstructionsFileKey)
			resp.ActivityInstructionsFileURL = &u
		}
	}
	return resp
}

type CompletionRateResponse struct {
	ActivityID     uuid.UUID `json:"activity_id"`
	CompletionRate float64   `json:"completion_rate"`
}
