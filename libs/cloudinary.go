package libs

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrImageTooLarge   = errors.New("file too large")
	ErrImageType       = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	ErrUploadsDisabled = errors.New("cloudinary credentials not configured")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageFile checks size and extension before anything is uploaded.
func ValidateImageFile(file *multipart.FileHeader, maxSize int64) error {
	if file.Size > maxSize {
		return fmt.Errorf("%w (max %d bytes)", ErrImageTooLarge, maxSize)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return ErrImageType
	}
	return nil
}

type ImageUploader struct {
	cld *cloudinary.Cloudinary
}

// NewImageUploader prefers explicit credentials and falls back to CLOUDINARY_URL.
func NewImageUploader(cloudName, apiKey, apiSecret, cloudinaryURL string) (*ImageUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cloudName != "" && apiKey != "" && apiSecret != "":
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	case cloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	default:
		return nil, ErrUploadsDisabled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &ImageUploader{cld: cld}, nil
}

func (u *ImageUploader) UploadImage(ctx context.Context, file multipart.File, filename, folder string) (string, string, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	publicID := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(base, " ", "_"))

	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	if url == "" {
		return "", "", errors.New("cloudinary returned no URL")
	}
	return url, result.PublicID, nil
}

func (u *ImageUploader) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	result, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}
