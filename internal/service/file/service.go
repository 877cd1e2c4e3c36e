package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/storage"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	MaxAvatarSize      = 2 << 20
	MaxAvatarDimension = 512
	avatarQuality      = 85
)

var allowedAvatarTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type FileService interface {
	// UploadAvatar validates the image first and only stores it when every check passed.
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	URL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	img, err := decodeAvatar(file, filename)
	if err != nil {
		return "", err
	}

	img = fitWithin(img, MaxAvatarDimension)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: avatarQuality}); err != nil {
		return "", fmt.Errorf("failed to encode avatar: %w", err)
	}

	key := path.Join("avatars", employeeID, uuid.NewString()+".jpg")
	stored, err := s.storage.Put(ctx, key, buf, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return stored, nil
}

func decodeAvatar(file io.Reader, filename string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	wantType, ok := allowedAvatarTypes[ext]
	if !ok {
		return nil, avatarError("avatar must be a jpg, jpeg or png image")
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar: %w", err)
	}
	if len(data) == 0 {
		return nil, avatarError("avatar is required")
	}
	if len(data) > MaxAvatarSize {
		return nil, avatarError(fmt.Sprintf("avatar must not exceed %d MB", MaxAvatarSize>>20))
	}
	if got := http.DetectContentType(data); got != wantType {
		return nil, avatarError("avatar content does not match its file extension")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, avatarError("avatar is not a readable image")
	}
	return img, nil
}

func avatarError(msg string) error {
	return validator.ValidationErrors{{Field: "avatar", Message: msg}}
}

// fitWithin scales src down so its longest side is at most max pixels.
func fitWithin(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Remove(ctx, key)
}

func (s *fileServiceImpl) URL(key string) string {
	return s.storage.URL(key)
}
