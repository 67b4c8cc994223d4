// file: internals/helpers/oss/oss_policy.go
package helper

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

/* =======================================================================
   FilePolicy - batas ukuran/MIME/ekstensi per use-case.
   Validasi dilakukan SEBELUM upload (pure check, tanpa side effect).
======================================================================= */

type FilePolicy struct {
	Name        string   // label use-case, dipakai di pesan error
	MaxSize     int64    // bytes; 0 = tanpa batas
	AllowedMIME []string // prefix match, mis. "application/pdf", "image/"
	AllowedExt  []string // lowercase dengan titik, mis. ".pdf"
}

var (
	// File lampiran activity (single_file / instructions)
	ActivityFilePolicy = FilePolicy{
		Name:        "activity_file",
		MaxSize:     20 * 1024 * 1024,
		AllowedMIME: nil, // bebas, guru yang unggah
		AllowedExt:  nil,
	}

	// File setoran siswa
	DepositFilePolicy = FilePolicy{
		Name:    "deposit_file",
		MaxSize: 50 * 1024 * 1024,
		AllowedMIME: []string{
			"application/pdf",
			"application/zip",
			"application/msword",
			"application/vnd.openxmlformats-officedocument",
			"text/",
			"image/",
		},
		AllowedExt: nil,
	}
)

// ValidateFileHeader: cek policy tanpa membuka isi file (size + ekstensi + MIME header).
// Return nil kalau lolos; error dengan pesan siap-tampil kalau tidak.
func ValidateFileHeader(fh *multipart.FileHeader, p FilePolicy) error {
	if fh == nil {
		return fmt.Errorf("file tidak ditemukan")
	}
	if p.MaxSize > 0 && fh.Size > p.MaxSize {
		return fmt.Errorf("ukuran file %q melebihi batas %d MB", fh.Filename, p.MaxSize/(1024*1024))
	}
	if len(p.AllowedExt) > 0 {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		ok := false
		for _, allowed := range p.AllowedExt {
			if ext == allowed {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("ekstensi %q tidak diizinkan untuk %s", ext, p.Name)
		}
	}
	if len(p.AllowedMIME) > 0 {
		ct := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
		if ct != "" {
			ok := false
			for _, allowed := range p.AllowedMIME {
				if strings.HasPrefix(ct, allowed) {
					ok = true
					break
				}
			}
			if !ok {
				return fmt.Errorf("tipe file %q tidak diizinkan untuk %s", ct, p.Name)
			}
		}
	}
	return nil
}
