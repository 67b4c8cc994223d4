// file: internals/helpers/oss/oss_file_service.go
package helper

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService adalah facade upload/hapus/stream yang seragam untuk controller
dan service. Implementasi produksi berbasis Aliyun OSS; test pakai stub.
*/
type BlobService interface {
	// UploadToDir: validasi policy → upload → return objectKey utk disimpan di DB.
	UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader, policy FilePolicy) (key string, err error)

	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) (deleted []string, failed map[string]error)

	// Stream: byte-stream utk export arsip (caller wajib Close)
	Stream(ctx context.Context, key string) (io.ReadCloser, error)

	// RetrievalURL: referensi pengambilan (signed / public) - bukan key mentah
	RetrievalURL(key string) string
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// Buat instance dari ENV. prefix opsional (contoh: "uploads/")
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader, policy FilePolicy) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if err := ValidateFileHeader(fh, policy); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	key, _, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		return "", err
	}
	return key, nil
}

func (b *OSSBlobService) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	return b.svc.DeleteObject(ctx, key)
}

func (b *OSSBlobService) DeleteMany(ctx context.Context, keys []string) ([]string, map[string]error) {
	if len(keys) == 0 {
		return nil, map[string]error{}
	}
	return b.svc.DeleteObjects(ctx, keys)
}

func (b *OSSBlobService) Stream(ctx context.Context, key string) (io.ReadCloser, error) {
	return b.svc.GetObjectStream(ctx, key)
}

func (b *OSSBlobService) RetrievalURL(key string) string {
	return b.svc.RetrievalURL(key)
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// FormFiles ambil seluruh file dari field tertentu (boleh kosong)
func FormFiles(c *fiber.Ctx, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
