package image

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	cloudinaryFolder = flag.String("cloudinary_folder", "civicmap-issues", "Cloudinary folder for report photos.")
)

// Uploader is the image hosting collaborator: it stores photo bytes
// somewhere external and hands back a URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// CloudinaryUploader stores report photos in Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader reads CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and
// CLOUDINARY_API_SECRET from the environment.
func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not fully configured")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: *cloudinaryFolder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         u.folder,
		PublicID:       fmt.Sprintf("report_%d", time.Now().UnixNano()),
		UniqueFilename: boolPtr(true),
		Overwrite:      boolPtr(false),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload of %s: empty secure URL", filename)
	}
	return resp.SecureURL, nil
}

func boolPtr(b bool) *bool { return &b }
