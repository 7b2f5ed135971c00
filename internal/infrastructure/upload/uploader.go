package upload

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores an avatar image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, username string) (string, error)
}

// CloudinaryUploader stores avatars on Cloudinary under contacts/<username>,
// served as a 250x250 fill crop.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, username string) (string, error) {
	publicID := "contacts/" + username
	_, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", err
	}

	image, err := u.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	image.Transformation = "c_fill,w_250,h_250"
	return image.String()
}

// Disabled is the uploader used when no image host is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader, string) (string, error) {
	return "", errors.New("avatar uploads are not configured")
}
