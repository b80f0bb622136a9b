// Package storage keeps uploaded restaurant images on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads outside the extension whitelist
var ErrUnsupportedType = errors.New("only .jpg, .jpeg, .png, .gif and .webp images are allowed")

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore writes uploads under Dir with random names
type ImageStore struct {
	Dir string
}

// NewImageStore creates the upload directory if needed
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{Dir: dir}, nil
}

// AllowedExt reports whether filename carries a whitelisted image extension
func AllowedExt(filename string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(filename))]
}

// Save copies the upload to a new file and returns the stored name
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close image: %w", err)
	}
	return name, nil
}

// Delete removes a stored image. Empty names and missing files are not errors.
func (s *ImageStore) Delete(name string) error {
	if name == "" {
		return nil
	}
	// only plain names produced by Save live in Dir
	if filepath.Base(name) != name {
		return fmt.Errorf("refusing to delete %q", name)
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
