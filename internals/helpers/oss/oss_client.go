// file: internals/helpers/oss/oss_client.go
package helper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// ErrStorageUnavailable: object store tidak bisa dihubungi / object hilang.
// Controller memetakan ini ke 502 dengan pesan generik (tanpa detail internal).
var ErrStorageUnavailable = errors.New("object store unavailable")

var (
	uploadTimeout = 30 * time.Second
	deleteTimeout = 3 * time.Second
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads/"
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

/* =======================================================================
   Upload
======================================================================= */

// UploadFromFormFileToDir: upload apa adanya ke subdir bebas.
// Key baru selalu dibangun ulang (tidak pernah overwrite object lama).
func (s *OSSService) UploadFromFormFileToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("nil file header")
	}
	key := s.buildObjectKey(fh.Filename)
	if dir != "" {
		key = strings.Trim(dir, "/") + "/" + key
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	uctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	opts := []oss.Option{
		oss.WithContext(uctx),
		oss.ContentType(ct),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, reader, opts...); err != nil {
		return "", "", fmt.Errorf("%w: put %s: %v", ErrStorageUnavailable, key, err)
	}
	return key, ct, nil
}

/* =======================================================================
   Delete (idempotent di level aplikasi)
======================================================================= */

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	dctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()
	if err := s.Bucket.DeleteObject(key, oss.WithContext(dctx)); err != nil {
		// object yang sudah hilang bukan error; OSS DeleteObject memang 204 utk missing key,
		// sisanya dianggap store bermasalah
		return fmt.Errorf("%w: delete %s: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}

// DeleteObjects: hapus banyak key; partial failure dikembalikan per-key.
func (s *OSSService) DeleteObjects(ctx context.Context, keys []string) (deleted []string, failed map[string]error) {
	failed = map[string]error{}
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err := s.DeleteObject(ctx, k); err != nil {
			log.Printf("[OSS] gagal hapus key=%s err=%v", k, err)
			failed[k] = err
			continue
		}
		deleted = append(deleted, k)
	}
	return deleted, failed
}

/* =======================================================================
   Fetch stream & retrieval URL
======================================================================= */

// GetObjectStream mengembalikan stream (bukan buffer) supaya file besar
// bisa di-pipe langsung ke encoder arsip / response.
func (s *OSSService) GetObjectStream(ctx context.Context, key string) (io.ReadCloser, error) {
	body, err := s.Bucket.GetObject(key, oss.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorageUnavailable, key, err)
	}
	return body, nil
}

// SignURL: URL ber-TTL untuk bucket private
func (s *OSSService) SignURL(key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	u, err := s.Bucket.SignURL(key, oss.HTTPGet, int64(ttl.Seconds()))
	if err != nil {
		return "", fmt.Errorf("%w: sign %s: %v", ErrStorageUnavailable, key, err)
	}
	return u, nil
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	if s.Endpoint == "" || s.BucketName == "" {
		return ""
	}
	end := s.Endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

// RetrievalURL: referensi pengambilan yang dikembalikan ke caller.
// Key mentah tidak pernah dikirim keluar; bucket private pakai signed URL.
func (s *OSSService) RetrievalURL(key string) string {
	if key == "" {
		return ""
	}
	if strings.EqualFold(getEnv("ALI_OSS_SIGN_URLS"), "true") {
		ttl := 15 * time.Minute
		if v := getEnv("ALI_OSS_SIGN_TTL_SECONDS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				ttl = time.Duration(n) * time.Second
			}
		}
		if u, err := s.SignURL(key, ttl); err == nil {
			return u
		}
		// presign gagal → jatuh ke public URL daripada bocorin error ke response
	}
	return s.PublicURL(key)
}

/* =======================================================================
   Key utils
======================================================================= */

// buildObjectKey: slug(nama)_timestamp_random.ext - collision resistant,
// nama asli masih bisa dipulihkan dari suffix key (lihat OriginalNameFromKey).
func (s *OSSService) buildObjectKey(filename string) string {
	return BuildObjectKey(s.Prefix, filename, time.Now())
}

func BuildObjectKey(prefix, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "file"
	}
	ts := now.Format("20060102_150405")
	rand6 := randHex(3)

	p := strings.Trim(prefix, "/")
	if p != "" {
		p += "/"
	}
	return fmt.Sprintf("%s%s_%s_%s%s", p, Slugify(base), ts, rand6, ext)
}

// OriginalNameFromKey memulihkan nama file semula dari sebuah object key
// (buang dir + suffix timestamp/random yang ditambah BuildObjectKey).
func OriginalNameFromKey(key string) string {
	name := key
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	// stem = slug_YYYYMMDD_HHMMSS_rand6; slug sendiri tidak memuat '_' (lihat Slugify)
	parts := strings.Split(stem, "_")
	if len(parts) > 3 {
		stem = strings.Join(parts[:len(parts)-3], "_")
	}
	if stem == "" {
		stem = "file"
	}
	return stem + ext
}

func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-", "—", "-", "–", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectContentType: ekstensi + sniff 512B
func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
	}

	if n > 0 {
		detected := http.DetectContentType(head[:n])
		if ct == "" || ct == "application/octet-stream" {
			ct = detected
		}
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct, src, nil
}
