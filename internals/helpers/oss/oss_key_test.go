// file: internals/helpers/oss/oss_key_test.go
package helper

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "laporan-akhir", Slugify("Laporan Akhir"))
	require.Equal(t, "tugas-1", Slugify("Tugas_1"))
	require.Equal(t, "file", Slugify("???"))
	require.Equal(t, "file", Slugify(""))
}

func TestBuildObjectKey_Format(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	key := BuildObjectKey("uploads/deposits", "Laporan Akhir.PDF", now)

	require.True(t, strings.HasPrefix(key, "uploads/deposits/laporan-akhir_20260314_092653_"))
	require.True(t, strings.HasSuffix(key, ".pdf"))

	// slug tidak memuat underscore → suffix selalu 3 segmen terakhir
	base := strings.TrimPrefix(key, "uploads/deposits/")
	require.Len(t, strings.Split(strings.TrimSuffix(base, ".pdf"), "_"), 4)
}

func TestBuildObjectKey_UniquePerCall(t *testing.T) {
	now := time.Now()
	a := BuildObjectKey("x", "a.txt", now)
	b := BuildObjectKey("x", "a.txt", now)
	require.NotEqual(t, a, b)
}

func TestOriginalNameFromKey_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	key := BuildObjectKey("uploads/deposits/abc", "Laporan_Akhir v2.pdf", now)

	// nama yang dipulihkan = slug + ekstensi asli
	require.Equal(t, "laporan-akhir-v2.pdf", OriginalNameFromKey(key))
}

func TestOriginalNameFromKey_PlainKey(t *testing.T) {
	// key tanpa suffix timestamp dibiarkan apa adanya
	require.Equal(t, "readme.txt", OriginalNameFromKey("dir/readme.txt"))
}
