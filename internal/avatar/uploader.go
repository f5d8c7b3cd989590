// AngelaMos | 2026
// uploader.go

package avatar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/carterperez-dev/templates/contacts-api/internal/config"
	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

var (
	ErrResize = errors.New("resize failed")

	ErrInvalidFile = core.NewAppError(
		core.ErrInvalidInput,
		"Invalid file information",
		core.KindValidation,
		"INVALID_FILE",
	)
	ErrFileTooLarge = core.NewAppError(
		core.ErrInvalidInput,
		"File too large",
		core.KindValidation,
		"FILE_TOO_LARGE",
	)
)

func resizeError(err error) *core.AppError {
	return core.NewAppError(
		fmt.Errorf("%w: %w", ErrResize, err),
		"Error resizing image: "+err.Error(),
		core.KindInternal,
		"RESIZE_FAILED",
	)
}

// maxPixels bounds the decoded size of an upload independently of its
// compressed size.
const maxPixels = 4096 * 4096

var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

type Uploader struct {
	store      Store
	stagingDir string
	size       int
	maxBytes   int64
}

func NewUploader(store Store, cfg config.StorageConfig) (*Uploader, error) {
	if err := os.MkdirAll(cfg.StagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	return &Uploader{
		store:      store,
		stagingDir: cfg.StagingDir,
		size:       cfg.AvatarSize,
		maxBytes:   cfg.MaxUploadBytes,
	}, nil
}

type Result struct {
	Key string
	URL string
}

// Upload stages src on disk, accepts only PNG, JPEG and GIF by content,
// scales the image to a size x size square and stores it under a key unique
// to ownerID. The staged file never outlives the call.
func (u *Uploader) Upload(
	ctx context.Context,
	ownerID string,
	src io.Reader,
) (result *Result, err error) {
	ctx, span := core.StartSpan(ctx, "avatar.Upload")
	defer func() { core.EndSpan(span, err) }()

	staged, err := os.CreateTemp(u.stagingDir, "avatar-*")
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		_ = staged.Close()           //nolint:errcheck // staged file is discarded
		_ = os.Remove(staged.Name()) //nolint:errcheck // staged file is discarded
	}()

	n, err := io.Copy(staged, io.LimitReader(src, u.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if n == 0 {
		return nil, ErrInvalidFile
	}
	if n > u.maxBytes {
		return nil, ErrFileTooLarge
	}

	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	mtype, err := mimetype.DetectReader(staged)
	if err != nil {
		return nil, fmt.Errorf("detect upload type: %w", err)
	}

	contentType := mtype.String()
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, ErrInvalidFile
	}

	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	data, err := u.resize(staged, contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s-%s%s", ownerID, uuid.NewString(), ext)

	url, err := u.store.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	return &Result{Key: key, URL: url}, nil
}

// Discard removes an avatar stored by Upload.
func (u *Uploader) Discard(ctx context.Context, key string) error {
	return u.store.Delete(ctx, key)
}

func (u *Uploader) resize(r io.ReadSeeker, contentType string) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, resizeError(err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 ||
		int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, ErrInvalidFile
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, resizeError(err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, u.size, u.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	switch contentType {
	case "image/png":
		err = png.Encode(&buf, dst)
	case "image/jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90})
	case "image/gif":
		err = gif.Encode(&buf, dst, nil)
	}
	if err != nil {
		return nil, resizeError(err)
	}

	return buf.Bytes(), nil
}
