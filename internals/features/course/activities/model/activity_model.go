// file: internals/features/course/activities/model/activity_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Tiga variant activity dalam SATU tabel (tagged union, bukan inheritance).
// activity_kind immutable setelah create; hanya kolom variant yang cocok boleh terisi.
type ActivityKind string

const (
	ActivityKindAnnouncement ActivityKind = "announcement"
	ActivityKindSingleFile   ActivityKind = "single_file"
	ActivityKindDepository   ActivityKind = "depository"
)

// Sesuaikan dengan CHECK: 'normal','important','urgent'
type UrgencyLevel string

const (
	UrgencyNormal    UrgencyLevel = "normal"
	UrgencyImportant UrgencyLevel = "important"
	UrgencyUrgent    UrgencyLevel = "urgent"
)

type ActivityModel struct {
	ActivityID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:activity_id" json:"activity_id"`
	ActivityCourseUnitID uuid.UUID    `gorm:"type:uuid;not null;index;column:activity_course_unit_id" json:"activity_course_unit_id"`
	ActivityKind         ActivityKind `gorm:"type:varchar(16);not null;column:activity_kind" json:"activity_kind"`

	ActivityTitle  string `gorm:"type:text;not null;column:activity_title" json:"activity_title"`
	ActivityBody   string `gorm:"type:text;not null;default:'';column:activity_body" json:"activity_body"`
	ActivityPinned bool   `gorm:"not null;default:false;column:activity_pinned" json:"activity_pinned"`

	// Pembatasan ke group tertentu; kosong = seluruh group course unit
	ActivityRestrictedGroupIDs pq.StringArray `gorm:"type:text[];column:activity_restricted_group_ids" json:"activity_restricted_group_ids,omitempty"`

	// ---- variant: announcement ----
	ActivityUrgency *UrgencyLevel `gorm:"type:varchar(12);column:activity_urgency" json:"activity_urgency,omitempty"`

	// ---- variant: single_file ----
	ActivityFileKind *string `gorm:"type:varchar(24);column:activity_file_kind" json:"activity_file_kind,omitempty"`
	ActivityFileKey  *string `gorm:"type:text;column:activity_file_key" json:"-"`

	// ---- variant: depository ----
	// Instruksi: teks inline ATAU satu blob - tepat satu yang terisi
	ActivityInstructionsText    *string        `gorm:"type:text;column:activity_instructions_text" json:"activity_instructions_text,omitempty"`
	ActivityInstructionsFileKey *string        `gorm:"type:text;column:activity_instructions_file_key" json:"-"`
	ActivityAcceptedFileKinds   pq.StringArray `gorm:"type:text[];column:activity_accepted_file_kinds" json:"activity_accepted_file_kinds,omitempty"`
	ActivityMaxFiles            *int           `gorm:"type:smallint;column:activity_max_files" json:"activity_max_files,omitempty"`
	ActivityDueAt               *time.Time     `gorm:"type:timestamptz;column:activity_due_at" json:"activity_due_at,omitempty"`

	ActivityCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:activity_created_at" json:"activity_created_at"`
	ActivityUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:activity_updated_at" json:"activity_updated_at"`
	ActivityDeletedAt gorm.DeletedAt `gorm:"column:activity_deleted_at;index" json:"activity_deleted_at,omitempty"`
}

func (ActivityModel) TableName() string { return "course_activities" }

// ============ Hooks: validation ============

func (m *ActivityModel) BeforeSave(tx *gorm.DB) error {
	m.ActivityTitle = strings.TrimSpace(m.ActivityTitle)
	return m.ValidateVariant()
}

// ValidateVariant: mirror CHECK constraint - field wajib per variant terisi,
// field variant lain kosong.
func (m *ActivityModel) ValidateVariant() error {
	if m.ActivityTitle == "" {
		return errors.New("activity_title wajib diisi")
	}

	switch m.ActivityKind {
	case ActivityKindAnnouncement:
		if m.ActivityUrgency == nil {
			return errors.New("activity_urgency wajib untuk announcement")
		}
		switch *m.ActivityUrgency {
		case UrgencyNormal, UrgencyImportant, UrgencyUrgent:
		default:
			return errors.New("activity_urgency invalid")
		}
		if m.hasSingleFileFields() || m.hasDepositoryFields() {
			return errors.New("field variant lain tidak boleh terisi pada announcement")
		}

	case ActivityKindSingleFile:
		if m.ActivityFileKey == nil || strings.TrimSpace(*m.ActivityFileKey) == "" {
			return errors.New("activity_file_key wajib untuk single_file")
		}
		if m.ActivityUrgency != nil || m.hasDepositoryFields() {
			return errors.New("field variant lain tidak boleh terisi pada single_file")
		}

	case ActivityKindDepository:
		if m.ActivityMaxFiles == nil || *m.ActivityMaxFiles < 1 {
			return errors.New("activity_max_files minimal 1 untuk depository")
		}
		hasText := m.ActivityInstructionsText != nil && strings.TrimSpace(*m.ActivityInstructionsText) != ""
		hasFile := m.ActivityInstructionsFileKey != nil && strings.TrimSpace(*m.ActivityInstructionsFileKey) != ""
		if hasText == hasFile {
			return errors.New("instruksi depository harus teks ATAU file (tepat satu)")
		}
		if m.ActivityUrgency != nil || m.hasSingleFileFields() {
			return errors.New("field variant lain tidak boleh terisi pada depository")
		}

	default:
		return errors.New("activity_kind invalid")
	}
	return nil
}

func (m *ActivityModel) hasSingleFileFields() bool {
	return m.ActivityFileKind != nil || m.ActivityFileKey != nil
}

func (m *ActivityModel) hasDepositoryFields() bool {
	return m.ActivityInstructionsText != nil || m.ActivityInstructionsFileKey != nil ||
		len(m.ActivityAcceptedFileKinds) > 0 || m.ActivityMaxFiles != nil || m.ActivityDueAt != nil
}

// OwnedBlobKey: blob yang DIMILIKI activity (single_file atau instruksi file).
// Deposit tidak pernah masuk sini - key setoran dimiliki record deposit.
func (m *ActivityModel) OwnedBlobKey() (string, bool) {
	if m.ActivityFileKey != nil && *m.ActivityFileKey != "" {
		return *m.ActivityFileKey, true
	}
	if m.ActivityInstructionsFileKey != nil && *m.ActivityInstructionsFileKey != "" {
		return *m.ActivityInstructionsFileKey, true
	}
	return "", false
}

// RestrictedGroupUUIDs: parse text[] jadi uuid; entri rusak diabaikan.
func (m *ActivityModel) RestrictedGroupUUIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m.ActivityRestrictedGroupIDs))
	for _, s := range m.ActivityRestrictedGroupIDs {
		if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// AcceptsFileKind: allow-list kosong = semua jenis diterima.
func (m *ActivityModel) AcceptsFileKind(kind string) bool {
	if len(m.ActivityAcceptedFileKinds) == 0 {
		return true
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	for _, k := range m.ActivityAcceptedFileKinds {
		if strings.ToLower(strings.TrimSpace(k)) == kind {
			return true
		}
	}
	return false
}
