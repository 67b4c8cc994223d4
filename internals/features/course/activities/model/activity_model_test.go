// file: internals/features/course/activities/model/activity_model_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string          { return &s }
func intPtr(n int) *int                { return &n }
func urgPtr(u UrgencyLevel) *UrgencyLevel { return &u }

func announcement() *ActivityModel {
	return &ActivityModel{
		ActivityKind:    ActivityKindAnnouncement,
		ActivityTitle:   "Libur semester",
		ActivityUrgency: urgPtr(UrgencyImportant),
	}
}

func depository() *ActivityModel {
	return &ActivityModel{
		ActivityKind:             ActivityKindDepository,
		ActivityTitle:            "Kumpulkan laporan",
		ActivityInstructionsText: strPtr("Unggah PDF final"),
		ActivityMaxFiles:         intPtr(3),
	}
}

func TestValidateVariant_Announcement(t *testing.T) {
	require.NoError(t, announcement().ValidateVariant())

	m := announcement()
	m.ActivityUrgency = nil
	require.Error(t, m.ValidateVariant())

	m = announcement()
	bad := UrgencyLevel("panik")
	m.ActivityUrgency = &bad
	require.Error(t, m.ValidateVariant())

	// field variant lain bocor → tolak
	m = announcement()
	m.ActivityMaxFiles = intPtr(2)
	require.Error(t, m.ValidateVariant())
}

func TestValidateVariant_SingleFile(t *testing.T) {
	m := &ActivityModel{
		ActivityKind:    ActivityKindSingleFile,
		ActivityTitle:   "Modul 1",
		ActivityFileKey: strPtr("uploads/activities/modul-1_20260101_000000_abc123.pdf"),
	}
	require.NoError(t, m.ValidateVariant())

	m.ActivityFileKey = strPtr("  ")
	require.Error(t, m.ValidateVariant())

	m.ActivityFileKey = strPtr("key")
	m.ActivityUrgency = urgPtr(UrgencyNormal)
	require.Error(t, m.ValidateVariant())
}

func TestValidateVariant_Depository(t *testing.T) {
	require.NoError(t, depository().ValidateVariant())

	m := depository()
	m.ActivityMaxFiles = intPtr(0)
	require.Error(t, m.ValidateVariant())

	m = depository()
	m.ActivityMaxFiles = nil
	require.Error(t, m.ValidateVariant())

	// instruksi dua-duanya terisi → tolak
	m = depository()
	m.ActivityInstructionsFileKey = strPtr("key")
	require.Error(t, m.ValidateVariant())

	// instruksi dua-duanya kosong → tolak
	m = depository()
	m.ActivityInstructionsText = nil
	require.Error(t, m.ValidateVariant())

	// file instruksi saja → sah
	m = depository()
	m.ActivityInstructionsText = nil
	m.ActivityInstructionsFileKey = strPtr("uploads/activities/instruksi_20260101_000000_abc123.pdf")
	require.NoError(t, m.ValidateVariant())
}

func TestValidateVariant_TitleRequired(t *testing.T) {
	m := announcement()
	m.ActivityTitle = ""
	require.Error(t, m.ValidateVariant())
}

func TestValidateVariant_UnknownKind(t *testing.T) {
	m := &ActivityModel{ActivityKind: "poll", ActivityTitle: "x"}
	require.Error(t, m.ValidateVariant())
}

func TestAcceptsFileKind(t *testing.T) {
	m := depository()
	require.True(t, m.AcceptsFileKind("pdf")) // allow-list kosong = semua

	m.ActivityAcceptedFileKinds = []string{"pdf", "zip"}
	require.True(t, m.AcceptsFileKind("PDF"))
	require.True(t, m.AcceptsFileKind("zip"))
	require.False(t, m.AcceptsFileKind("exe"))
}

func TestOwnedBlobKey(t *testing.T) {
	_, ok := announcement().OwnedBlobKey()
	require.False(t, ok)

	m := depository()
	m.ActivityInstructionsText = nil
	m.ActivityInstructionsFileKey = strPtr("k-instruksi")
	key, ok := m.OwnedBlobKey()
	require.True(t, ok)
	require.Equal(t, "k-instruksi", key)
}

func TestRestrictedGroupUUIDs_SkipsInvalid(t *testing.T) {
	m := announcement()
	m.ActivityRestrictedGroupIDs = []string{
		"2b1f8f6e-3b77-4c8e-9f2d-6a1c5d4e3f21",
		"bukan-uuid",
	}
	require.Len(t, m.RestrictedGroupUUIDs(), 1)
}
