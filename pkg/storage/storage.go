// Package storage manages uploaded files on local disk. Each entity type has
// its own subdirectory under the upload root, so the location of a stored
// file is derivable from what it belongs to.
package storage

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind selects the destination subdirectory for an upload.
type Kind int

const (
	KindGeneric Kind = iota
	KindProfile
	KindGallery
	KindAward
)

// MaxFileSize is the upload ceiling (5 MiB), enforced before the file is
// written.
const MaxFileSize = 5 * 1024 * 1024

// imageExts is the extension allow-list for image uploads.
var imageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

// Store writes and removes uploaded files under a fixed root directory.
type Store struct {
	root    string
	baseURL string
}

// New creates a Store rooted at dir. baseURL is prepended when building fully
// qualified file URLs.
func New(dir, baseURL string) *Store {
	return &Store{root: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root returns the upload root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) dirFor(kind Kind) string {
	switch kind {
	case KindProfile:
		return filepath.Join(s.root, "profile")
	case KindGallery:
		return filepath.Join(s.root, "gallery")
	case KindAward:
		return filepath.Join(s.root, "award")
	default:
		return s.root
	}
}

func prefixFor(kind Kind) string {
	switch kind {
	case KindGallery:
		return "gallery-"
	case KindAward:
		return "award-"
	default:
		return ""
	}
}

// relativePath builds the path stored in the database and used by the static
// file server, always with forward slashes.
func (s *Store) relativePath(kind Kind, filename string) string {
	base := path.Base(filepath.ToSlash(s.root))
	switch kind {
	case KindProfile:
		return "/" + base + "/profile/" + filename
	case KindGallery:
		return "/" + base + "/gallery/" + filename
	case KindAward:
		return "/" + base + "/award/" + filename
	default:
		return "/" + base + "/" + filename
	}
}

// URL returns the fully qualified URL for a relative upload path.
func (s *Store) URL(relativePath string) string {
	return s.baseURL + relativePath
}

// ValidateImage checks the extension and declared content type against the
// image allow-list and enforces the size ceiling.
func ValidateImage(fh *multipart.FileHeader) error {
	if fh.Size > MaxFileSize {
		return fmt.Errorf("ไฟล์มีขนาดใหญ่เกินไป (สูงสุด 5MB)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExts[ext] {
		return fmt.Errorf("ประเภทไฟล์ไม่ถูกต้อง (เฉพาะ jpeg, jpg, png, gif, webp)")
	}
	ct := fh.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("ประเภทไฟล์ไม่ถูกต้อง (เฉพาะ jpeg, jpg, png, gif, webp)")
	}
	return nil
}

// ValidateDocument accepts images plus PDF (used for award files).
func ValidateDocument(fh *multipart.FileHeader) error {
	if fh.Size > MaxFileSize {
		return fmt.Errorf("ไฟล์มีขนาดใหญ่เกินไป (สูงสุด 5MB)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if imageExts[ext] {
		ct := fh.Header.Get("Content-Type")
		if ct == "" || strings.HasPrefix(ct, "image/") {
			return nil
		}
	}
	if ext == ".pdf" {
		ct := fh.Header.Get("Content-Type")
		if ct == "" || ct == "application/pdf" {
			return nil
		}
	}
	return fmt.Errorf("อนุญาตเฉพาะไฟล์รูปภาพหรือ PDF เท่านั้น")
}

// UniqueName generates a collision-resistant filename: unix timestamp plus a
// random suffix, keeping the original extension.
func UniqueName(kind Kind, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s%d-%s%s", prefixFor(kind), time.Now().UnixNano(), suffix, ext)
}

// SaveFunc writes the upload to dst; fiber's Ctx.SaveFile satisfies it.
type SaveFunc func(fh *multipart.FileHeader, dst string) error

// Save stores the upload under the kind's directory, creating it on demand,
// and returns the relative path and the generated filename.
func (s *Store) Save(kind Kind, fh *multipart.FileHeader, save SaveFunc) (string, string, error) {
	dir := s.dirFor(kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	name := UniqueName(kind, fh.Filename)
	if err := save(fh, filepath.Join(dir, name)); err != nil {
		return "", "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	return s.relativePath(kind, name), name, nil
}

// Basename extracts the stored filename from a reference that may be a full
// URL or a relative path.
func Basename(ref string) string {
	if strings.Contains(ref, "://") {
		if u, err := url.Parse(ref); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(ref)
}

// Delete removes the file behind a stored reference. It probes the known
// upload directories in a fixed priority order and stops at the first match.
// Deletion is best-effort: a missing file is logged, never surfaced, so it
// can never block the primary database mutation.
func (s *Store) Delete(ref string) {
	if ref == "" {
		return
	}
	name := Basename(ref)
	locations := []string{
		filepath.Join(s.root, name),
		filepath.Join(s.root, "gallery", name),
		filepath.Join(s.root, "profile", name),
		filepath.Join(s.root, "award", name),
	}
	for _, full := range locations {
		if _, err := os.Stat(full); err == nil {
			if err := os.Remove(full); err != nil {
				log.Printf("Error deleting file %s: %v", full, err)
			}
			return
		}
	}
	log.Printf("File to delete not found in expected locations: %s", name)
}
