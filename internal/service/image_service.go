package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMediaDir     = "/tmp/inkwell/media"
	MaxImageUploadBytes = 10 * 1024 * 1024
	ImageMaxSize        = 2048
	JPEGQuality         = 82
	WebPQuality         = 70
)

type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService stores post images on local disk. Each upload is re-encoded
// to a JPEG master plus a WebP variant under a random name, so user-supplied
// bytes and filenames never reach disk as-is.
type ImageService struct {
	mediaDir string
}

func NewImageService(cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{mediaDir: mediaDir}
}

// Upload validates, re-encodes and stores an image, returning the URL path
// to the JPEG master.
func (s *ImageService) Upload(in UploadImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > MaxImageUploadBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxImageUploadBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if !isSupportedImageFormat(format) {
		return "", models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, ImageMaxSize, ImageMaxSize)

	jpegBytes, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	webpBytes, err := encodeWebP(master, WebPQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String()
	jpegPath := filepath.Join(s.mediaDir, name+".jpg")
	webpPath := filepath.Join(s.mediaDir, name+".webp")

	if err := writeBytesToFile(jpegPath, jpegBytes); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := writeBytesToFile(webpPath, webpBytes); err != nil {
		_ = os.Remove(jpegPath)
		return "", models.NewInternalError(err)
	}

	return "/media/" + name + ".jpg", nil
}

// MediaDir exposes the storage root for the static file route.
func (s *ImageService) MediaDir() string {
	return s.mediaDir
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func isSupportedImageFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
