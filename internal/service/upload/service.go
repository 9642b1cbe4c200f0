package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sbochoun/folio/internal/model"
)

// MaxFileSize caps each uploaded image at 5MB.
const MaxFileSize = 5 << 20

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// service stores portfolio images under a public directory and hands back
// their web paths.
type service struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func New(dir, urlPrefix string) (*service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &service{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

// Store validates and writes one uploaded image, assigning a unique name so
// uploads never clobber each other.
func (s *service) Store(header *multipart.FileHeader) (*model.UploadedFile, error) {
	if header.Size > MaxFileSize {
		return nil, model.Invalid("image", "file exceeds the 5MB limit")
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer src.Close()

	// Sniff the real content type instead of trusting the submitted header.
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("detecting content type: %w", err)
	}
	if !allowedType(mtype) {
		return nil, model.Invalid("image", "only image files are allowed (JPEG, PNG, GIF, WebP)")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding uploaded file: %w", err)
	}

	filename := fmt.Sprintf("project-%d-%d%s",
		s.now().UnixMilli(), rand.Intn(1_000_000_000), strings.ToLower(path.Ext(header.Filename)))

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("writing file: %w", err)
	}

	return &model.UploadedFile{
		Filename:     filename,
		OriginalName: header.Filename,
		Path:         strings.TrimPrefix(s.urlPrefix, "/") + "/" + filename,
		URL:          s.urlPrefix + "/" + filename,
		Size:         size,
		Modified:     s.now(),
	}, nil
}

// List returns the stored images, newest first.
func (s *service) List() ([]model.UploadedFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading upload directory: %w", err)
	}

	files := []model.UploadedFile{}
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(path.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("reading file info: %w", err)
		}
		files = append(files, model.UploadedFile{
			Filename: entry.Name(),
			Path:     strings.TrimPrefix(s.urlPrefix, "/") + "/" + entry.Name(),
			URL:      s.urlPrefix + "/" + entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})

	return files, nil
}

// Delete removes a stored image by name. Names with path separators are
// rejected so callers cannot reach outside the upload directory.
func (s *service) Delete(filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return model.ErrFileNotFound
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ErrFileNotFound
		}
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

func allowedType(mtype *mimetype.MIME) bool {
	for _, allowed := range allowedTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}
