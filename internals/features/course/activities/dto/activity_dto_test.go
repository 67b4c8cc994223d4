// file: internals/features/course/activities/dto/activity_dto_test.go
package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	model "kampusku_backend/internals/features/course/activities/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func depositoryWithInstructionsFile() *model.ActivityModel {
	key := "uploads/activities/instructions/petunjuk_20260101_000000_abc123.pdf"
	return &model.ActivityModel{
		ActivityKind:                model.ActivityKindDepository,
		ActivityTitle:               "Praktikum 1",
		ActivityInstructionsFileKey: &key,
		ActivityMaxFiles:            intPtr(3),
	}
}

func TestPatchApply_InstructionsTextFreesOldBlob(t *testing.T) {
	act := depositoryWithInstructionsFile()
	oldKey := *act.ActivityInstructionsFileKey

	body := PatchActivityRequest{ActivityInstructionsText: strPtr("Unggah PDF final")}
	freed, err := body.Apply(act)
	require.NoError(t, err)

	// key lama dilaporkan ke caller supaya blob-nya bisa dibebaskan
	require.Equal(t, oldKey, freed)
	require.Nil(t, act.ActivityInstructionsFileKey)
	require.Equal(t, "Unggah PDF final", *act.ActivityInstructionsText)
	require.NoError(t, act.ValidateVariant())
}

func TestPatchApply_NoFreedKeyWhenInstructionsWereText(t *testing.T) {
	text := "lama"
	act := &model.ActivityModel{
		ActivityKind:             model.ActivityKindDepository,
		ActivityTitle:            "Praktikum 1",
		ActivityInstructionsText: &text,
		ActivityMaxFiles:         intPtr(3),
	}

	body := PatchActivityRequest{ActivityInstructionsText: strPtr("baru")}
	freed, err := body.Apply(act)
	require.NoError(t, err)
	require.Empty(t, freed)
	require.Equal(t, "baru", *act.ActivityInstructionsText)
}

func TestPatchApply_UntouchedInstructionsKeepBlob(t *testing.T) {
	act := depositoryWithInstructionsFile()
	oldKey := *act.ActivityInstructionsFileKey

	body := PatchActivityRequest{ActivityMaxFiles: intPtr(5)}
	freed, err := body.Apply(act)
	require.NoError(t, err)
	require.Empty(t, freed)
	require.Equal(t, oldKey, *act.ActivityInstructionsFileKey)
	require.Equal(t, 5, *act.ActivityMaxFiles)
}

func TestPatchApply_RejectsForeignVariantFields(t *testing.T) {
	urgency := model.UrgencyImportant

	act := depositoryWithInstructionsFile()
	_, err := (&PatchActivityRequest{ActivityUrgency: &urgency}).Apply(act)
	require.Error(t, err)
	// model tidak boleh tersentuh saat ditolak
	require.NotNil(t, act.ActivityInstructionsFileKey)

	ann := &model.ActivityModel{
		ActivityKind:    model.ActivityKindAnnouncement,
		ActivityTitle:   "Info",
		ActivityUrgency: &urgency,
	}
	_, err = (&PatchActivityRequest{ActivityMaxFiles: intPtr(2)}).Apply(ann)
	require.Error(t, err)

	single := &model.ActivityModel{
		ActivityKind:    model.ActivityKindSingleFile,
		ActivityTitle:   "Modul",
		ActivityFileKey: strPtr("key"),
	}
	_, err = (&PatchActivityRequest{ActivityUrgency: &urgency}).Apply(single)
	require.Error(t, err)
}

func TestPatchApply_MergesSharedFields(t *testing.T) {
	act := depositoryWithInstructionsFile()
	pinned := true

	body := PatchActivityRequest{
		ActivityTitle:  strPtr("  Praktikum 1 (rev)  "),
		ActivityPinned: &pinned,
	}
	freed, err := body.Apply(act)
	require.NoError(t, err)
	require.Empty(t, freed)
	require.Equal(t, "Praktikum 1 (rev)", act.ActivityTitle)
	require.True(t, act.ActivityPinned)
}
