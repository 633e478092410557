// Package photos stores uploaded profile photos on the local filesystem.
package photos

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
)

const subdir = "profile-photos"

var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// LocalStore writes photos under <Dir>/profile-photos and returns URLs under <URLPrefix>/profile-photos.
type LocalStore struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
}

func NewLocalStore(dir, urlPrefix string, maxBytes int64) *LocalStore {
	return &LocalStore{Dir: dir, URLPrefix: urlPrefix, MaxBytes: maxBytes}
}

// Save stores the image read from r and returns its public URL.
// Non-image or oversized content yields apperrors.ErrValidation; any
// filesystem failure yields apperrors.ErrUploadFailed.
func (s *LocalStore) Save(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read upload: %w", apperrors.ErrUploadFailed, err)
	}
	if int64(len(data)) > s.MaxBytes {
		return "", apperrors.NewValidationError("photo exceeds %d bytes", s.MaxBytes)
	}

	mt := mimetype.Detect(data)
	ext, ok := allowed[mt.String()]
	if !ok {
		return "", apperrors.NewValidationError("unsupported photo type %s", mt.String())
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrUploadFailed, err)
	}

	dir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create upload dir: %w", apperrors.ErrUploadFailed, err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write photo: %w", apperrors.ErrUploadFailed, err)
	}
	return path.Join(s.URLPrefix, subdir, name), nil
}
